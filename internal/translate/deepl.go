package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultDeepLAPIBase = "https://api-free.deepl.com"

// DeepLClient translates text using the DeepL v2 REST API.
type DeepLClient struct {
	apiKey     string
	apiBase    string
	httpClient *http.Client
}

// NewDeepLClient creates a client. An empty apiBase selects the free-tier
// endpoint.
func NewDeepLClient(apiKey, apiBase string) *DeepLClient {
	if apiBase == "" {
		apiBase = defaultDeepLAPIBase
	}
	return &DeepLClient{
		apiKey:  apiKey,
		apiBase: strings.TrimSuffix(apiBase, "/"),
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

// Translate sends text to DeepL and returns the translation.
func (d *DeepLClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if d.apiKey == "" {
		return "", fmt.Errorf("translation API key not configured")
	}

	form := url.Values{}
	form.Add("text", text)
	form.Set("target_lang", deeplLangCode(targetLang))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.apiBase+"/v2/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API error (status %d): %s", resp.StatusCode, string(body))
	}

	var deeplResp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &deeplResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(deeplResp.Translations) == 0 {
		return "", fmt.Errorf("translation API returned no translations")
	}

	return deeplResp.Translations[0].Text, nil
}

// deeplLangCode converts ISO 639-1 codes to DeepL's upper-case format.
func deeplLangCode(code string) string {
	return strings.ToUpper(code)
}
