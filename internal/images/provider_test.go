package images

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewProvider(Options{
		PotterURL:  srv.URL,
		PokemonURL: srv.URL,
		CatURL:     srv.URL,
		HTTPClient: srv.Client(),
		Rand:       rand.New(rand.NewPCG(1, 2)),
	})
}

func TestPlaceholderThemes(t *testing.T) {
	t.Parallel()

	for _, theme := range []string{"starwars", "placeholder", ""} {
		theme := theme
		t.Run("theme="+theme, func(t *testing.T) {
			t.Parallel()
			p := NewProvider(Options{})
			cards, err := p.Images(context.Background(), theme, 3)
			require.NoError(t, err)
			require.Len(t, cards, 3)
			for i, c := range cards {
				assert.Equal(t, i+1, c.ID)
				assert.Equal(t, fmt.Sprintf("Image %d", i+1), c.Name)
				assert.Equal(t, fmt.Sprintf("https://picsum.photos/200/200?random=%d", i+1), c.Image)
			}
		})
	}
}

func TestImagesRejectsNonPositiveCount(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(Options{}).Images(context.Background(), ThemeCats, 0)
	require.Error(t, err)
}

func TestPokemonFetchesInParallelAndKeepsIndexLabels(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasPrefix(r.URL.Path, "/api/v2/pokemon/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		num := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v2/pokemon/"), "/")
		fmt.Fprintf(w, `{"name":"mon-%s","sprites":{"front_default":"https://img.test/%s.png"}}`, num, num)
	})

	cards, err := p.Images(context.Background(), ThemePokemon, 4)
	require.NoError(t, err)
	require.Len(t, cards, 4)
	require.EqualValues(t, 4, calls.Load())
	for i, c := range cards {
		assert.Equal(t, i+1, c.ID)
		assert.True(t, strings.HasPrefix(c.Name, "mon-"))
		assert.NotEmpty(t, c.Image)
	}
}

func TestPokemonFallsBackPerItem(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1)%2 == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"name":"pikachu","sprites":{"front_default":"https://img.test/25.png"}}`))
	})

	cards, err := p.Images(context.Background(), ThemePokemon, 4)
	require.NoError(t, err)
	require.Len(t, cards, 4)

	fallbacks := 0
	for n, c := range cards {
		require.Equal(t, n+1, c.ID)
		require.NotEmpty(t, c.Image)
		if c.Name == fmt.Sprintf("Pokemon %d", n+1) {
			fallbacks++
			require.Equal(t, fmt.Sprintf("https://picsum.photos/200/200?random=%d", n+100), c.Image)
		}
	}
	require.Equal(t, 2, fallbacks)
}

func TestPokemonWithoutSpriteIsAFailure(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"missingno","sprites":{"front_default":null}}`))
	})

	cards, err := p.Images(context.Background(), ThemePokemon, 2)
	require.NoError(t, err)
	require.Equal(t, PokemonPlaceholder(1), cards[0])
	require.Equal(t, PokemonPlaceholder(2), cards[1])
	require.Equal(t, "https://picsum.photos/200/200?random=100", cards[0].Image)
}

func TestPotterFiltersShufflesAndTakesCount(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[
			{"name":"Harry","image":"https://img.test/harry.jpg"},
			{"name":"Nobody","image":""},
			{"name":"Hermione","image":"https://img.test/hermione.jpg"},
			{"name":"Ron","image":"https://img.test/ron.jpg"}
		]`))
	})

	cards, err := p.Images(context.Background(), ThemeHarryPotter, 2)
	require.NoError(t, err)
	require.EqualValues(t, 1, calls.Load())
	require.Len(t, cards, 2)
	for i, c := range cards {
		assert.Equal(t, i+1, c.ID)
		assert.NotEqual(t, "Nobody", c.Name)
		assert.Contains(t, c.Image, "https://img.test/")
	}
	assert.NotEqual(t, cards[0].Name, cards[1].Name)
}

func TestPotterPadsWhenTooFewCharacters(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Harry","image":"https://img.test/harry.jpg"}]`))
	})

	cards, err := p.Images(context.Background(), ThemeHarryPotter, 3)
	require.NoError(t, err)
	require.Equal(t, "Harry", cards[0].Name)
	require.Equal(t, PotterPlaceholder(2), cards[1])
	require.Equal(t, PotterPlaceholder(3), cards[2])
}

func TestPotterFailureFallsBackForWholeBatch(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	cards, err := p.Images(context.Background(), ThemeHarryPotter, 3)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	for i, c := range cards {
		assert.Equal(t, fmt.Sprintf("Character %d", i+1), c.Name)
		assert.Equal(t, fmt.Sprintf("https://picsum.photos/200/200?random=%d", i+300), c.Image)
	}
}

func TestCats(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/v1/images/search" || n == 2 {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		fmt.Fprintf(w, `[{"url":"https://cdn.test/cat-%d.jpg"}]`, n)
	})

	cards, err := p.Images(context.Background(), ThemeCats, 3)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	require.EqualValues(t, 3, calls.Load())

	fallbacks := 0
	for i, c := range cards {
		require.Equal(t, i+1, c.ID)
		if strings.HasPrefix(c.Image, "https://placekitten.com/") {
			fallbacks++
			require.Equal(t, CatPlaceholder(i+1), c)
			continue
		}
		require.Contains(t, c.Image, "https://cdn.test/cat-")
	}
	require.Equal(t, 1, fallbacks)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"url":"https://cdn.test/cat.jpg"}]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Images(ctx, ThemeCats, 2)
	require.ErrorIs(t, err, context.Canceled)
}
