package translation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByName(t *testing.T) {
	assert.Nil(t, New("", Options{}))
	assert.Nil(t, New("babelfish", Options{}))

	assert.IsType(t, &DeepLClient{}, New("DeepL", Options{}))
	assert.IsType(t, &GeminiClient{}, New(" gemini ", Options{}))
}

func TestMissingCredentials(t *testing.T) {
	ctx := context.Background()

	_, err := NewDeepLClient("", http.DefaultClient).Translate(ctx, "en", "de", "x")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewDeepLClient("", http.DefaultClient).Usage(ctx)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewGeminiClient("", "", http.DefaultClient).Translate(ctx, "en", "de", "x")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestDeepLEndpointByKey(t *testing.T) {
	assert.Equal(t, deeplFreeURL, NewDeepLClient("abc:fx", nil).baseURL)
	assert.Equal(t, deeplProURL, NewDeepLClient("abc", nil).baseURL)
}

func TestDeepLLanguageCodes(t *testing.T) {
	assert.Equal(t, "EN", deeplSourceLang("en_US"))
	assert.Equal(t, "PT", deeplSourceLang("pt"))

	tests := map[string]string{
		"de":    "DE",
		"fr":    "FR",
		"en":    "EN-US",
		"en_GB": "EN-GB",
		"pt":    "PT-PT",
		"pt_BR": "PT-BR",
	}

	for locale, want := range tests {
		assert.Equal(t, want, deeplTargetLang(locale), locale)
	}
}

func TestDeepLTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "DeepL-Auth-Key secret", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		assert.NoError(t, err)
		assert.Equal(t, "Hello", form.Get("text"))
		assert.Equal(t, "EN", form.Get("source_lang"))
		assert.Equal(t, "DE", form.Get("target_lang"))

		_, _ = io.WriteString(w, `{"translations":[{"detected_source_language":"EN","text":"Hallo"}]}`)
	}))
	defer srv.Close()

	dc := NewDeepLClient("secret", srv.Client())
	dc.baseURL = srv.URL

	out, err := dc.Translate(context.Background(), "en", "de", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", out)
}

func TestDeepLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", 456)
	}))
	defer srv.Close()

	dc := NewDeepLClient("secret", srv.Client())
	dc.baseURL = srv.URL

	_, err := dc.Translate(context.Background(), "en", "de", "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "456")
}

func TestDeepLUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/usage", r.URL.Path)
		_, _ = io.WriteString(w, `{"character_count":180118,"character_limit":1250000}`)
	}))
	defer srv.Close()

	dc := NewDeepLClient("secret", srv.Client())
	dc.baseURL = srv.URL

	u, err := dc.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Usage{Used: 180118, Limit: 1250000}, u)
	assert.Equal(t, int64(1069882), u.Remaining())
	assert.Equal(t, int64(-1), Usage{Used: 3}.Remaining())
}

func TestGeminiTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req geminiRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.SystemInstruction.Parts[0].Text, "German")
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Hello")

		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":" Hallo\n"}]}}]}`)
	}))
	defer srv.Close()

	gc := NewGeminiClient("k", "test-model", srv.Client())
	gc.baseURL = srv.URL

	out, err := gc.Translate(context.Background(), "en", "de", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", out)
}

func TestGeminiClientErrorIsNotRetried(t *testing.T) {
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	gc := NewGeminiClient("k", "m", srv.Client())
	gc.baseURL = srv.URL

	_, err := gc.Translate(context.Background(), "en", "de", "Hello")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "German (de)", languageName("de"))
	assert.Equal(t, "??", languageName("??"))
}
