package encoding

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebAppURL = "https://seriousseal.github.io/tensor_expressions_webapp/"

// decodeSegment обращает конвейер кодирования средствами стандартной
// библиотеки: процентное кодирование, base64, затем gzip.
func decodeSegment(t *testing.T, segment string) []byte {
	t.Helper()

	unescaped, err := url.PathUnescape(segment)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(unescaped)
	require.NoError(t, err)

	return gzipDecompress(t, raw)
}

func TestEncodeSegmentRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "Quoted expression", input: `"a->a"`},
		{name: "Sizes array", input: "[2, 2, 2]"},
		{name: "Empty payload", input: ""},
		{name: "Nested contraction", input: `"[41,10,11],[[9,10,24,25]->[11,25]]"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segment, err := EncodeSegment([]byte(tt.input))
			require.NoError(t, err)

			// Сегмент пригоден для подстановки в query без экранирования
			assert.Regexp(t, `^[A-Za-z0-9._~%-]*$`, segment)

			assert.Equal(t, []byte(tt.input), decodeSegment(t, segment))
		})
	}
}

func TestBuildShareableURL(t *testing.T) {
	shareURL, err := BuildShareableURL(testWebAppURL, "a->a", "2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(shareURL, testWebAppURL+"?e="))
	assert.Equal(t, 1, strings.Count(shareURL, "?e="))
	assert.Equal(t, 1, strings.Count(shareURL, "&s="))

	query := strings.TrimPrefix(shareURL, testWebAppURL+"?e=")
	parts := strings.SplitN(query, "&s=", 2)
	require.Len(t, parts, 2)

	assert.Equal(t, []byte(`"a->a"`), decodeSegment(t, parts[0]))
	assert.Equal(t, []byte("[2]"), decodeSegment(t, parts[1]))
}

func TestBuildShareableURLSizesList(t *testing.T) {
	shareURL, err := BuildShareableURL(testWebAppURL, "[1,2],[2,3]->[1,3]", "2, 3, 4")
	require.NoError(t, err)

	parts := strings.SplitN(strings.TrimPrefix(shareURL, testWebAppURL+"?e="), "&s=", 2)
	require.Len(t, parts, 2)

	assert.Equal(t, []byte(`"[1,2],[2,3]->[1,3]"`), decodeSegment(t, parts[0]))
	assert.Equal(t, []byte("[2, 3, 4]"), decodeSegment(t, parts[1]))
}

func TestBuildShareableURLKeepsQuotesUnescaped(t *testing.T) {
	// Кавычки внутри выражения не экранируются: формат сегмента
	// согласован с принимающим веб-приложением
	shareURL, err := BuildShareableURL(testWebAppURL, `say "hi"`, "2")
	require.NoError(t, err)

	parts := strings.SplitN(strings.TrimPrefix(shareURL, testWebAppURL+"?e="), "&s=", 2)
	require.Len(t, parts, 2)

	assert.Equal(t, []byte(`"say "hi""`), decodeSegment(t, parts[0]))
}

func TestBuildShareableURLConcurrent(t *testing.T) {
	const iterations = 50

	expression := "[41,10,11],[[9,10,24,25]->[11,25]]"
	sizes := "2, 2, 2, 2"

	want, err := BuildShareableURL(testWebAppURL, expression, sizes)
	require.NoError(t, err)

	errChan := make(chan error, iterations)
	var wg sync.WaitGroup

	wg.Add(iterations)
	for i := 0; i < iterations; i++ {
		go func() {
			defer wg.Done()

			got, err := BuildShareableURL(testWebAppURL, expression, sizes)
			if err != nil {
				errChan <- err
				return
			}
			if got != want {
				errChan <- fmt.Errorf("concurrent result differs from sequential one")
			}
		}()
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		t.Errorf("Error during concurrent build: %v", err)
	}
}

func BenchmarkBuildShareableURL(b *testing.B) {
	expression := strings.Repeat("[41,10,11],", 64) + "[9,10]->[]"
	sizes := strings.Repeat("2, ", 87) + "2"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildShareableURL(testWebAppURL, expression, sizes); err != nil {
			b.Fatal(err)
		}
	}
}
