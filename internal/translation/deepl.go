package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	deeplFreeURL = "https://api-free.deepl.com/v2"
	deeplProURL  = "https://api.deepl.com/v2"
)

// DeepLClient translates through the DeepL REST API. Keys ending in ":fx"
// belong to the free plan and use its dedicated host.
type DeepLClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewDeepLClient creates a DeepL provider.
func NewDeepLClient(apiKey string, httpClient *http.Client) *DeepLClient {
	base := deeplProURL
	if strings.HasSuffix(apiKey, ":fx") {
		base = deeplFreeURL
	}

	return &DeepLClient{apiKey: apiKey, baseURL: base, httpClient: httpClient}
}

// Name implements Provider.
func (dc *DeepLClient) Name() string { return "deepl" }

type deeplTranslateResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

type deeplUsageResponse struct {
	CharacterCount int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

// Translate implements Provider.
func (dc *DeepLClient) Translate(ctx context.Context, source, target, text string) (string, error) {
	if dc.apiKey == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", deeplSourceLang(source))
	form.Set("target_lang", deeplTargetLang(target))

	var out deeplTranslateResponse
	if err := dc.call(ctx, http.MethodPost, "/translate", form, &out); err != nil {
		return "", err
	}

	if len(out.Translations) == 0 {
		return "", errors.New("empty response: no translations")
	}

	return out.Translations[0].Text, nil
}

// Usage implements UsageReporter.
func (dc *DeepLClient) Usage(ctx context.Context) (Usage, error) {
	if dc.apiKey == "" {
		return Usage{}, ErrMissingCredentials
	}

	var out deeplUsageResponse
	if err := dc.call(ctx, http.MethodGet, "/usage", nil, &out); err != nil {
		return Usage{}, err
	}

	return Usage{Used: out.CharacterCount, Limit: out.CharacterLimit}, nil
}

func (dc *DeepLClient) call(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, dc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "DeepL-Auth-Key "+dc.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := dc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// deeplSourceLang maps a canonical locale to a DeepL source code. Source
// languages carry no region.
func deeplSourceLang(locale string) string {
	lang, _, _ := strings.Cut(locale, "_")
	return strings.ToUpper(lang)
}

// deeplRegionalTargets are the languages DeepL only accepts as targets with
// a region.
var deeplRegionalTargets = map[string]string{
	"en": "EN-US",
	"pt": "PT-PT",
}

// deeplTargetLang maps a canonical locale to a DeepL target code, keeping
// the region ("pt_BR" becomes "PT-BR"). Bare "en" and "pt" get a default region.
func deeplTargetLang(locale string) string {
	if code, ok := deeplRegionalTargets[locale]; ok {
		return code
	}

	return strings.ToUpper(strings.ReplaceAll(locale, "_", "-"))
}
