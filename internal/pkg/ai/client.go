// Package ai calls the primary LLM provider (Groq) with a HuggingFace
// text-generation fallback. Both failing is not an error condition for the
// caller: results carry an explicit unavailable state instead.
package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
)

const (
	ProviderGroq = "groq"
	ProviderHF   = "huggingface"
	ProviderNone = "none"

	callTimeout = 45 * time.Second
)

type Client struct {
	GroqURL    string
	GroqKey    string
	GroqModel  string
	HFKey      string
	HFModel    string
	HFEndpoint string
}

func NewFromConfig() *Client {
	return &Client{
		GroqURL:    "https://api.groq.com/openai/v1/chat/completions",
		GroqKey:    viper.GetString(constants.ViperGroqAPIKey),
		GroqModel:  viper.GetString(constants.ViperGroqModel),
		HFKey:      viper.GetString(constants.ViperHFAPIKey),
		HFModel:    viper.GetString(constants.ViperHFModel),
		HFEndpoint: viper.GetString(constants.ViperHFEndpoint),
	}
}

// JSONResult is a structured-JSON generation outcome.
type JSONResult struct {
	OK       bool
	Provider string
	Data     map[string]interface{}
	Err      string
}

// TextResult is a freeform generation outcome.
type TextResult struct {
	OK       bool
	Provider string
	Text     string
	Err      string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type hfGeneration []struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateJSON asks for a JSON object reply, trying Groq then HuggingFace.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) JSONResult {
	var errs []string

	if c.GroqKey != "" {
		text, err := c.callGroq(ctx, []chatMessage{
			{Role: "system", Content: "Return only valid JSON. Do not wrap in markdown."},
			{Role: "user", Content: prompt},
		})
		if err == "" {
			if parsed, ok := ExtractJSONObject(text); ok {
				return JSONResult{OK: true, Provider: ProviderGroq, Data: parsed}
			}
			errs = append(errs, "Groq returned non-JSON response")
		} else {
			errs = append(errs, "Groq unavailable: "+err)
		}
	} else {
		errs = append(errs, "Groq unavailable: GROQ_API_KEY is missing")
	}

	if c.HFKey != "" {
		text, err := c.callHF(ctx, prompt, 900, 0.2)
		if err == "" {
			if parsed, ok := ExtractJSONObject(text); ok {
				return JSONResult{OK: true, Provider: ProviderHF, Data: parsed}
			}
			errs = append(errs, "HuggingFace returned non-JSON response")
		} else {
			errs = append(errs, "HuggingFace unavailable: "+err)
		}
	} else {
		errs = append(errs, "HuggingFace unavailable: HUGGINGFACE_API_KEY is missing")
	}

	return JSONResult{OK: false, Provider: ProviderNone, Err: strings.Join(errs, " | ")}
}

// GenerateText answers a chat turn grounded in the given context, trying Groq
// then HuggingFace. History is capped to the last 8 turns.
func (c *Client) GenerateText(ctx context.Context, system, contextBlock, message string, history []domain.ChatMessage) TextResult {
	var errs []string

	if len(history) > 8 {
		history = history[len(history)-8:]
	}

	if c.GroqKey != "" {
		messages := []chatMessage{{Role: "system", Content: system + "\n\nCONTEXT:\n" + contextBlock}}
		for _, h := range history {
			role := "user"
			if h.Role == "assistant" {
				role = "assistant"
			}
			messages = append(messages, chatMessage{Role: role, Content: h.Content})
		}
		messages = append(messages, chatMessage{Role: "user", Content: message})

		text, err := c.callGroq(ctx, messages)
		if err == "" {
			return TextResult{OK: true, Provider: ProviderGroq, Text: text}
		}
		errs = append(errs, "Groq unavailable: "+err)
	} else {
		errs = append(errs, "Groq unavailable: GROQ_API_KEY is missing")
	}

	if c.HFKey != "" {
		var sb strings.Builder
		sb.WriteString(system)
		sb.WriteString("\n\nCONTEXT:\n")
		sb.WriteString(contextBlock)
		sb.WriteString("\n\nCHAT HISTORY:\n")
		for _, h := range history {
			role := "User"
			if h.Role == "assistant" {
				role = "Assistant"
			}
			sb.WriteString(role + ": " + h.Content + "\n")
		}
		sb.WriteString("\nUser: " + message + "\nAssistant:")

		text, err := c.callHF(ctx, sb.String(), 500, 0.3)
		if err == "" && strings.TrimSpace(text) != "" {
			return TextResult{OK: true, Provider: ProviderHF, Text: strings.TrimSpace(text)}
		}
		if err == "" {
			err = "empty HuggingFace response"
		}
		errs = append(errs, "HuggingFace unavailable: "+err)
	} else {
		errs = append(errs, "HuggingFace unavailable: HUGGINGFACE_API_KEY is missing")
	}

	return TextResult{OK: false, Provider: ProviderNone, Err: strings.Join(errs, " | ")}
}

func (c *Client) callGroq(ctx context.Context, messages []chatMessage) (text, errMsg string) {
	body, err := sonic.Marshal(map[string]interface{}{
		"model":       c.GroqModel,
		"temperature": 0.2,
		"max_tokens":  1200,
		"messages":    messages,
	})
	if err != nil {
		return "", err.Error()
	}

	res := httpx.Do[groqResponse](ctx, httpx.Request{
		Method: http.MethodPost,
		URL:    c.GroqURL,
		Body:   body,
		Header: http.Header{
			"Authorization": []string{"Bearer " + c.GroqKey},
			"Content-Type":  []string{"application/json"},
		},
		Timeout: callTimeout,
	})
	if !res.OK {
		return "", res.Err
	}
	if len(res.Data.Choices) == 0 || strings.TrimSpace(res.Data.Choices[0].Message.Content) == "" {
		return "", "Groq returned empty content"
	}

	return strings.TrimSpace(res.Data.Choices[0].Message.Content), ""
}

func (c *Client) callHF(ctx context.Context, prompt string, maxNewTokens int, temperature float64) (text, errMsg string) {
	body, err := sonic.Marshal(map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_new_tokens":   maxNewTokens,
			"temperature":      temperature,
			"return_full_text": false,
		},
	})
	if err != nil {
		return "", err.Error()
	}

	res := httpx.Do[hfGeneration](ctx, httpx.Request{
		Method: http.MethodPost,
		URL:    c.hfEndpointURL(),
		Body:   body,
		Header: http.Header{
			"Authorization": []string{"Bearer " + c.HFKey},
			"Content-Type":  []string{"application/json"},
		},
		Timeout: callTimeout,
	})
	if !res.OK {
		return "", res.Err
	}
	if len(*res.Data) == 0 {
		return "", "empty HuggingFace response"
	}

	return (*res.Data)[0].GeneratedText, ""
}

// hfEndpointURL tolerates bases that already include the models segment.
func (c *Client) hfEndpointURL() string {
	base := strings.TrimRight(c.HFEndpoint, "/")
	if strings.Contains(base, "/models/") {
		return base
	}
	if strings.HasSuffix(base, "/models") {
		return base + "/" + c.HFModel
	}
	return base + "/models/" + c.HFModel
}

var fenceReplacer = strings.NewReplacer("```json", "", "```JSON", "", "```", "")

// ExtractJSONObject pulls a JSON object out of model output, stripping
// markdown fences and, failing a direct parse, trying the first {...} block.
func ExtractJSONObject(text string) (map[string]interface{}, bool) {
	cleaned := strings.TrimSpace(fenceReplacer.Replace(text))

	var parsed map[string]interface{}
	if err := sonic.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return parsed, true
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	if err := sonic.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
		return nil, false
	}

	return parsed, true
}
