// Package translate is the boundary translation collaborator: Japanese
// report text fields are translated to Korean while excluded fields
// (names, URLs, source labels, timestamps) pass through verbatim.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"google.golang.org/genai"

	"github.com/JapSyu/crawler/pkg/core/utils"
	"github.com/JapSyu/crawler/pkg/models"
)

// skipFields are never sent for translation; they are identifiers and
// metadata, not prose.
var skipFields = map[string]struct{}{
	"company_key":  {},
	"name":         {},
	"name_en":      {},
	"url":          {},
	"source":       {},
	"collected_at": {},
	"run_id":       {},
	"sec_code":     {},
}

// Hiragana, katakana and CJK unified ranges, punctuation included.
var japanesePattern = regexp.MustCompile(`[\x{3000}-\x{303F}\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]`)

// HasJapanese reports whether the text contains Japanese script.
func HasJapanese(text string) bool {
	return japanesePattern.MatchString(text)
}

const systemPrompt = `You translate Japanese corporate disclosure text to Korean.
Translate only the Japanese parts; keep English words and phrases unchanged.
Respond with a JSON object mapping each input key to its translated value. No commentary.`

// Translator translates report text fields using the Gemini API.
type Translator struct {
	Model string // e.g. "gemini-2.0-flash-exp"
}

// TranslateFields translates a key→text map in one request. Keys in the
// exclusion set and texts without Japanese script are returned unchanged.
func (t *Translator) TranslateFields(ctx context.Context, fields map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	pending := make(map[string]string)
	for key, text := range fields {
		if _, skip := skipFields[key]; skip || !HasJapanese(text) {
			out[key] = text
			continue
		}
		pending[key] = text
	}
	if len(pending) == 0 {
		return out, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := t.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	payload, err := json.Marshal(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translation input: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(string(payload)), config)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}

	translated := make(map[string]string)
	if _, err := utils.SmartParse(result.Text(), &translated); err != nil {
		return nil, fmt.Errorf("failed to parse translation response: %w", err)
	}

	for key, text := range pending {
		if ko, ok := translated[key]; ok && ko != "" {
			out[key] = ko
		} else {
			// Untranslated fields keep their source text rather than vanish.
			out[key] = text
		}
	}
	return out, nil
}

// TranslateReport fills the Korean fields of a report in place on a copy
// and returns it; the input report is not mutated.
func (t *Translator) TranslateReport(ctx context.Context, report *models.CompanyReport) (*models.CompanyReport, error) {
	translated := *report

	fields := map[string]string{}
	if report.Basic.Headquarters != "" {
		fields["headquarters"] = report.Basic.Headquarters
	}
	if len(fields) == 0 {
		return &translated, nil
	}

	result, err := t.TranslateFields(ctx, fields)
	if err != nil {
		return nil, err
	}
	if ko, ok := result["headquarters"]; ok {
		translated.Basic.HeadquartersKO = ko
	}
	return &translated, nil
}
