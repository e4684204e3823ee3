package constant

const (
	GreetingReply      = "Hello! How can I help you?"
	NoDocumentsReply   = "I don't have any documents in this session with information to answer that. Please provide a YouTube URL or a PDF first."
	NoTranscriptReply  = "Sorry, I could not find a transcript for that video."
	VideoIngestedReply = `Successfully processed "%s". You can now ask questions about it.`
	PDFIngestedReply   = `Successfully processed "%s".`

	ErrQueryRequired       = "Query and thread_id are required."
	ErrFileRequired        = "File and thread_id are required."
	ErrThreadIDRequired    = "thread_id is required."
	ErrInvalidListQuery    = "limit must be between 0 and 100, offset must not be negative and scope must be rewriter or answer."
	ErrProcessingFile      = "An error processing your file."
	ErrProcessingRequest   = "An error occurred during your request."
	ErrProcessingVideoLink = "An error occurred processing the YouTube link."

	SessionIDPrefix = "session_"
)

// Greetings answered without retrieval. Matched case-insensitively after trimming.
var Greetings = []string{"hi", "hii", "hello", "hey", "hy"}
