// Package images turns a theme name into card faces. Each theme has its own
// source; any source failure degrades to deterministic placeholder images so
// a game can always start.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/memoria/internal/game"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

// Theme names understood by the provider. Any other name yields local placeholders.
const (
	ThemeHarryPotter = "harrypotter"
	ThemePokemon     = "pokemon"
	ThemeCats        = "cats"
)

// Default upstream origins.
const (
	DefaultPotterURL  = "https://potterhead-api.vercel.app"
	DefaultPokemonURL = "https://pokeapi.co"
	DefaultCatURL     = "https://api.thecatapi.com"
)

const (
	maxPokemonID   = 1000
	defaultTimeout = 10 * time.Second
	maxParallel    = 8
)

// Options configures a Provider.
type Options struct {
	PotterURL  string
	PokemonURL string
	CatURL     string
	HTTPClient *http.Client
	Rand       *rand.Rand
	Logger     *logger.Logger
}

// Provider fetches card descriptors for a theme.
type Provider struct {
	potterURL  string
	pokemonURL string
	catURL     string
	http       *http.Client
	log        *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewProvider creates a Provider, filling unset origins with the public defaults.
func NewProvider(opts Options) *Provider {
	p := &Provider{
		potterURL:  strings.TrimRight(orDefault(opts.PotterURL, DefaultPotterURL), "/"),
		pokemonURL: strings.TrimRight(orDefault(opts.PokemonURL, DefaultPokemonURL), "/"),
		catURL:     strings.TrimRight(orDefault(opts.CatURL, DefaultCatURL), "/"),
		http:       opts.HTTPClient,
		log:        opts.Logger,
		rng:        opts.Rand,
	}
	if p.http == nil {
		p.http = &http.Client{Timeout: defaultTimeout}
	}
	return p
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Images returns count descriptors with ids 1..count for theme. Upstream
// failures never surface as errors; only a cancelled ctx or a bad count does.
func (p *Provider) Images(ctx context.Context, theme string, count int) ([]game.CardDescriptor, error) {
	if count <= 0 {
		return nil, fmt.Errorf("image count must be positive, got %d", count)
	}

	var (
		cards []game.CardDescriptor
		err   error
	)
	switch theme {
	case ThemeHarryPotter:
		cards = p.potterCharacters(ctx, count)
	case ThemePokemon:
		cards, err = p.pokemon(ctx, count)
	case ThemeCats:
		cards, err = p.cats(ctx, count)
	default:
		cards = Placeholders(count)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.log.Debug(ctx, "images ready", "theme", theme, "count", len(cards))
	return cards, nil
}

// Placeholders returns count local placeholder descriptors.
func Placeholders(count int) []game.CardDescriptor {
	cards := make([]game.CardDescriptor, count)
	for i := range cards {
		id := i + 1
		cards[i] = game.CardDescriptor{
			ID:    id,
			Name:  fmt.Sprintf("Image %d", id),
			Image: fmt.Sprintf("https://picsum.photos/200/200?random=%d", id),
		}
	}
	return cards
}

// PotterPlaceholder is the face used when the character API is unavailable.
func PotterPlaceholder(id int) game.CardDescriptor {
	return game.CardDescriptor{
		ID:    id,
		Name:  fmt.Sprintf("Character %d", id),
		Image: fmt.Sprintf("https://picsum.photos/200/200?random=%d", id+299),
	}
}

// PokemonPlaceholder is the face used when fetching pokemon number id fails.
func PokemonPlaceholder(id int) game.CardDescriptor {
	return game.CardDescriptor{
		ID:    id,
		Name:  fmt.Sprintf("Pokemon %d", id),
		Image: fmt.Sprintf("https://picsum.photos/200/200?random=%d", id-1+100),
	}
}

// CatPlaceholder is the face used when fetching cat number id fails.
func CatPlaceholder(id int) game.CardDescriptor {
	return game.CardDescriptor{
		ID:    id,
		Name:  fmt.Sprintf("Cat %d", id),
		Image: fmt.Sprintf("https://placekitten.com/400/300?image=%d", id),
	}
}

type character struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (p *Provider) potterCharacters(ctx context.Context, count int) []game.CardDescriptor {
	var characters []character
	if err := p.getJSON(ctx, p.potterURL+"/api/characters", &characters); err != nil {
		p.log.Warn(ctx, "error fetching potter characters, using placeholders", "error", memerrors.NewProviderError(ThemeHarryPotter, 0, err))
		cards := make([]game.CardDescriptor, count)
		for i := range cards {
			cards[i] = PotterPlaceholder(i + 1)
		}
		return cards
	}

	withImages := make([]game.CardDescriptor, 0, len(characters))
	for _, c := range characters {
		if c.Image != "" {
			withImages = append(withImages, game.CardDescriptor{Name: c.Name, Image: c.Image})
		}
	}

	p.mu.Lock()
	shuffled := game.Shuffle(p.rng, withImages)
	p.mu.Unlock()

	cards := make([]game.CardDescriptor, count)
	for i := range cards {
		if i < len(shuffled) {
			cards[i] = shuffled[i]
			cards[i].ID = i + 1
			continue
		}
		cards[i] = PotterPlaceholder(i + 1)
	}
	if len(shuffled) < count {
		p.log.Warn(ctx, "not enough potter characters with images, padding with placeholders",
			"available", len(shuffled), "requested", count)
	}
	return cards
}

type pokemon struct {
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

func (p *Provider) pokemon(ctx context.Context, count int) ([]game.CardDescriptor, error) {
	p.mu.Lock()
	numbers := make([]int, count)
	for i := range numbers {
		numbers[i] = p.intN(maxPokemonID) + 1
	}
	p.mu.Unlock()

	return p.fanOut(ctx, count, func(ctx context.Context, id int) (game.CardDescriptor, error) {
		var pk pokemon
		url := fmt.Sprintf("%s/api/v2/pokemon/%d/", p.pokemonURL, numbers[id-1])
		if err := p.getJSON(ctx, url, &pk); err != nil {
			return PokemonPlaceholder(id), memerrors.NewProviderError(ThemePokemon, id, err)
		}
		if pk.Sprites.FrontDefault == "" {
			return PokemonPlaceholder(id), memerrors.NewProviderError(ThemePokemon, id, fmt.Errorf("pokemon %d has no sprite", numbers[id-1]))
		}
		return game.CardDescriptor{ID: id, Name: pk.Name, Image: pk.Sprites.FrontDefault}, nil
	})
}

type catImage struct {
	URL string `json:"url"`
}

func (p *Provider) cats(ctx context.Context, count int) ([]game.CardDescriptor, error) {
	return p.fanOut(ctx, count, func(ctx context.Context, id int) (game.CardDescriptor, error) {
		var found []catImage
		if err := p.getJSON(ctx, p.catURL+"/v1/images/search", &found); err != nil {
			return CatPlaceholder(id), memerrors.NewProviderError(ThemeCats, id, err)
		}
		if len(found) == 0 || found[0].URL == "" {
			return CatPlaceholder(id), memerrors.NewProviderError(ThemeCats, id, fmt.Errorf("empty search result"))
		}
		return game.CardDescriptor{ID: id, Name: fmt.Sprintf("Cat %d", id), Image: found[0].URL}, nil
	})
}

// fetchFunc returns the descriptor for id. When it also returns an error the
// descriptor is the placeholder to use instead.
type fetchFunc func(ctx context.Context, id int) (game.CardDescriptor, error)

// fanOut runs fetch for ids 1..count in parallel and places results by index.
// Item failures are logged and never cancel siblings.
func (p *Provider) fanOut(ctx context.Context, count int, fetch fetchFunc) ([]game.CardDescriptor, error) {
	cards := make([]game.CardDescriptor, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i := range cards {
		id := i + 1
		g.Go(func() error {
			card, err := fetch(gctx, id)
			if err != nil {
				p.log.Warn(gctx, "image fetch failed, using placeholder", "error", err, "index", id)
			}
			cards[id-1] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (p *Provider) intN(n int) int {
	if p.rng != nil {
		return p.rng.IntN(n)
	}
	return rand.IntN(n)
}

func (p *Provider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
