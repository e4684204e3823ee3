package controller

import (
	"io"
	"strings"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/observability"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	ListHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService    service.IChatService
	ingestService  service.IIngestService
	historyService service.IHistoryService
	metrics        *observability.Metrics
}

func NewChatController(
	chatService service.IChatService,
	ingestService service.IIngestService,
	historyService service.IHistoryService,
	metrics *observability.Metrics,
) IChatController {
	return &chatController{
		chatService:    chatService,
		ingestService:  ingestService,
		historyService: historyService,
		metrics:        metrics,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate", c.Generate)
	r.Post("/upload", c.Upload)
	r.Post("/session", c.CreateSession)
	r.Get("/documents", c.ListDocuments)
	r.Get("/history", c.ListHistory)
}

// Generate answers with a plain text body.
func (c *chatController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.count("generate", "bad_request")
		return dto.NewServiceError(fiber.StatusBadRequest, constant.ErrQueryRequired, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		c.count("generate", "bad_request")
		return dto.NewServiceError(fiber.StatusBadRequest, constant.ErrQueryRequired, err)
	}

	answer, err := c.chatService.Generate(ctx.UserContext(), &req)
	if err != nil {
		c.count("generate", "error")
		return err
	}

	c.count("generate", "ok")
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.SendString(answer)
}

func (c *chatController) Upload(ctx *fiber.Ctx) error {
	threadId := strings.TrimSpace(ctx.FormValue("thread_id"))
	fileHeader, err := ctx.FormFile("file")
	if err != nil || threadId == "" {
		c.count("upload", "bad_request")
		return dto.NewServiceError(fiber.StatusBadRequest, constant.ErrFileRequired, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.count("upload", "error")
		return dto.NewServiceError(fiber.StatusInternalServerError, constant.ErrProcessingFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.count("upload", "error")
		return dto.NewServiceError(fiber.StatusInternalServerError, constant.ErrProcessingFile, err)
	}

	res, err := c.ingestService.IngestPDF(ctx.UserContext(), &dto.UploadRequest{
		ThreadId: threadId,
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		c.count("upload", "error")
		return err
	}

	c.count("upload", "ok")
	return ctx.JSON(res)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	c.count("session", "ok")
	return ctx.Status(fiber.StatusCreated).JSON(c.chatService.CreateSession(ctx.UserContext()))
}

func (c *chatController) ListDocuments(ctx *fiber.Ctx) error {
	var req dto.ListDocumentsRequest
	if err := ctx.QueryParser(&req); err != nil {
		c.count("documents", "bad_request")
		return listQueryError(req.ThreadId, err)
	}
	req.ThreadId = strings.TrimSpace(req.ThreadId)
	if err := serverutils.ValidateRequest(req); err != nil {
		c.count("documents", "bad_request")
		return listQueryError(req.ThreadId, err)
	}

	docs, err := c.ingestService.ListDocuments(ctx.UserContext(), &req)
	if err != nil {
		c.count("documents", "error")
		return dto.NewServiceError(fiber.StatusInternalServerError, constant.ErrProcessingRequest, err)
	}

	c.count("documents", "ok")
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", docs))
}

// ListHistory pages the archived turns of a session, oldest first.
func (c *chatController) ListHistory(ctx *fiber.Ctx) error {
	var req dto.ListHistoryRequest
	if err := ctx.QueryParser(&req); err != nil {
		c.count("history", "bad_request")
		return listQueryError(req.ThreadId, err)
	}
	req.ThreadId = strings.TrimSpace(req.ThreadId)
	if err := serverutils.ValidateRequest(req); err != nil {
		c.count("history", "bad_request")
		return listQueryError(req.ThreadId, err)
	}

	turns, err := c.historyService.ListHistory(ctx.UserContext(), &req)
	if err != nil {
		c.count("history", "error")
		return dto.NewServiceError(fiber.StatusInternalServerError, constant.ErrProcessingRequest, err)
	}

	c.count("history", "ok")
	return ctx.JSON(serverutils.SuccessResponse("Success list history", turns))
}

func listQueryError(threadId string, err error) error {
	if strings.TrimSpace(threadId) == "" {
		return dto.NewServiceError(fiber.StatusBadRequest, constant.ErrThreadIDRequired, err)
	}
	return dto.NewServiceError(fiber.StatusBadRequest, constant.ErrInvalidListQuery, err)
}

func (c *chatController) count(route, outcome string) {
	if c.metrics != nil {
		c.metrics.CountRequest(route, outcome)
	}
}
