package normalize

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

// Videos normalizes the video-search payload shape: a provider envelope whose
// inner text is either a JSON array, an object with a videos array, or plain
// lines of titles/links. Unparseable payloads yield an empty list.
func Videos(raw []byte) []domain.VideoResult {
	return videosValue(Decode(raw))
}

func videosValue(v any) []domain.VideoResult {
	switch payload := v.(type) {
	case nil:
		return []domain.VideoResult{}
	case string:
		return []domain.VideoResult{}
	case []any:
		return videoEntries(payload)
	case map[string]any:
		if inner, ok := UnwrapEnvelope(payload); ok {
			if text, isText := inner.(string); isText {
				return videosFromLines(text)
			}
			return videosValue(inner)
		}
		if videos, ok := payload["videos"].([]any); ok {
			return videoEntries(videos)
		}
		return []domain.VideoResult{}
	default:
		return []domain.VideoResult{}
	}
}

func videoEntries(items []any) []domain.VideoResult {
	out := make([]domain.VideoResult, 0, len(items))
	for i, item := range items {
		switch entry := item.(type) {
		case map[string]any:
			var video domain.VideoResult
			video.ID, _ = stringField(entry, "id")
			video.Title, _ = stringField(entry, "title")
			video.URL, _ = stringField(entry, "url")
			if video.Title == "" && video.URL == "" {
				continue
			}
			if video.ID == "" {
				video.ID = fmt.Sprintf("video-%d", i)
			}
			if video.URL == "" {
				video.URL = searchURL(video.Title)
			}
			out = append(out, video)
		case string:
			if entry = strings.TrimSpace(entry); entry != "" {
				out = append(out, lineToVideo(entry, i))
			}
		}
	}
	return out
}

func videosFromLines(text string) []domain.VideoResult {
	out := []domain.VideoResult{}
	index := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, lineToVideo(line, index))
		index++
	}
	return out
}

func lineToVideo(line string, index int) domain.VideoResult {
	video := domain.VideoResult{
		ID:    fmt.Sprintf("video-%d", index),
		Title: line,
	}
	if strings.Contains(line, "http") {
		video.URL = line
	} else {
		video.URL = searchURL(line)
	}
	return video
}

func searchURL(title string) string {
	return "https://youtube.com/search?q=" + url.QueryEscape(title)
}
