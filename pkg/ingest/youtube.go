package ingest

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/retry"
	"rag-chat-be/pkg/store"

	"github.com/tidwall/gjson"
)

const DefaultWatchBaseURL = "https://www.youtube.com"

var (
	videoURLPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com|youtu\.be)/(?:watch\?v=)?(.+)`)
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	playerPattern   = regexp.MustCompile(`(?s)ytInitialPlayerResponse\s*=\s*(\{.+?\});\s*(?:var\s+meta|</script>)`)
)

// IsVideoURL reports whether s looks like a link to a hosted video.
func IsVideoURL(s string) bool {
	return videoURLPattern.MatchString(strings.TrimSpace(s))
}

// VideoID extracts the 11 character id from watch, short, embed and shorts links.
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoIDPattern.MatchString(raw) {
		return raw, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case host == "youtu.be":
		id = segments[0]
	case u.Query().Get("v") != "":
		id = u.Query().Get("v")
	case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
		id = segments[1]
	}

	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("no video id in %q", raw)
	}
	return id, nil
}

// Transcript is the flattened caption text of one video.
type Transcript struct {
	VideoID string
	Title   string
	Text    string
}

// TranscriptFetcher scrapes the watch page for caption tracks and downloads
// the timed text of the preferred language.
type TranscriptFetcher struct {
	BaseURL  string
	Language string
	Client   *http.Client
}

func NewTranscriptFetcher(language string) *TranscriptFetcher {
	if language == "" {
		language = "en"
	}
	return &TranscriptFetcher{
		BaseURL:  DefaultWatchBaseURL,
		Language: language,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

func (f *TranscriptFetcher) Fetch(ctx context.Context, rawURL string) (*Transcript, error) {
	id, err := VideoID(rawURL)
	if err != nil {
		return nil, &rag.ExtractionError{Source: rawURL, Err: err}
	}

	page, err := f.get(ctx, fmt.Sprintf("%s/watch?v=%s&hl=%s", f.BaseURL, id, url.QueryEscape(f.Language)))
	if err != nil {
		return nil, &rag.ExtractionError{Source: rawURL, Err: err}
	}

	match := playerPattern.FindSubmatch(page)
	if match == nil {
		return nil, &rag.NoTranscriptError{URL: rawURL}
	}
	player := gjson.ParseBytes(match[1])

	if status := player.Get("playabilityStatus.status").String(); status != "" && status != "OK" {
		return nil, &rag.NoTranscriptError{URL: rawURL}
	}

	title := player.Get("videoDetails.title").String()
	if title == "" {
		title = id
	}

	trackURL := f.pickTrack(player.Get("captions.playerCaptionsTracklistRenderer.captionTracks"))
	if trackURL == "" {
		return nil, &rag.NoTranscriptError{URL: rawURL}
	}

	body, err := f.get(ctx, trackURL)
	if err != nil {
		return nil, &rag.ExtractionError{Source: rawURL, Err: err}
	}

	text, err := flattenTimedText(body)
	if err != nil {
		return nil, &rag.ExtractionError{Source: rawURL, Err: err}
	}
	if text == "" {
		return nil, &rag.NoTranscriptError{URL: rawURL}
	}

	return &Transcript{VideoID: id, Title: title, Text: text}, nil
}

func (f *TranscriptFetcher) pickTrack(tracks gjson.Result) string {
	var first string
	var chosen string
	tracks.ForEach(func(_, track gjson.Result) bool {
		base := track.Get("baseUrl").String()
		if base == "" {
			return true
		}
		if first == "" {
			first = base
		}
		if strings.EqualFold(track.Get("languageCode").String(), f.Language) {
			chosen = base
			return false
		}
		return true
	})
	if chosen == "" {
		chosen = first
	}
	if chosen != "" && strings.HasPrefix(chosen, "/") {
		chosen = f.BaseURL + chosen
	}
	return chosen
}

func (f *TranscriptFetcher) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", f.Language)
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; rag-chat-be)")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &retry.StatusError{Service: "youtube", StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

func flattenTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", errors.Join(errors.New("decode timed text"), err)
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Value))
		if line != "" {
			parts = append(parts, strings.Join(strings.Fields(line), " "))
		}
	}
	return strings.Join(parts, " "), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ToDocument converts a transcript into a Document tagged "youtube".
func (t *Transcript) ToDocument(source string) *store.Document {
	return &store.Document{
		Text:   t.Text,
		Source: source,
		Title:  t.Title,
		Type:   store.DocumentTypeYouTube,
	}
}
