package botdetect

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_Match(t *testing.T) {
	d := New(nil)

	tests := []struct {
		name      string
		userAgent string
		want      string
		wantOK    bool
	}{
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "Googlebot", true},
		{"case insensitive", "mozilla/5.0 (compatible; BINGBOT/2.0)", "bingbot", true},
		{"yandex", "Mozilla/5.0 (compatible; YandexBot/3.0)", "YandexBot", true},
		{"browser", "Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0", "", false},
		{"empty", "", "", false},
		// Both Googlebot and bingbot appear; table order decides.
		{"first match wins", "bingbot Googlebot", "Googlebot", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Match(tt.userAgent)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetector_EmptyTable(t *testing.T) {
	d := New([]string{})
	_, ok := d.Match("Googlebot")
	assert.False(t, ok)
	assert.Empty(t, d.Patterns())
}

func TestDetector_SkipsEmptyPatterns(t *testing.T) {
	d := New([]string{"", "PetalBot"})
	assert.Equal(t, []string{"PetalBot"}, d.Patterns())

	_, ok := d.Match("anything")
	assert.False(t, ok, "empty pattern must not match every agent")
}

func TestDetector_Replace(t *testing.T) {
	d := New(nil)
	d.Replace([]string{"Applebot"})

	_, ok := d.Match("Googlebot/2.1")
	assert.False(t, ok)

	got, ok := d.Match("Mozilla/5.0 (Applebot/0.1)")
	assert.True(t, ok)
	assert.Equal(t, "Applebot", got)
}

func TestDetector_PatternsIsCopy(t *testing.T) {
	d := New(nil)
	p := d.Patterns()
	p[0] = "changed"

	assert.Equal(t, "Googlebot", d.Patterns()[0])
	assert.Equal(t, "Googlebot", DefaultPatterns[0])
}

func TestDetector_ConcurrentReplace(t *testing.T) {
	d := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Replace([]string{"Googlebot", "bingbot"})
		}()
		go func() {
			defer wg.Done()
			got, ok := d.Match("Googlebot")
			assert.True(t, ok)
			assert.Equal(t, "Googlebot", got)
		}()
	}
	wg.Wait()
}
