package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
	"newsdesk/internal/network"
)

type CardSize string

const (
	SizeLarge   CardSize = "large"
	SizeSmall   CardSize = "small"
	SizeDefault CardSize = "default"
)

const (
	faviconTimeout     = 5 * time.Second
	maxConcurrentProbe = 4 // concurrent favicon probe limit
)

// CardLayout fixes the presentation rules of a size variant: image dimensions,
// text clamping depth, arrangement, and load priority.
type CardLayout struct {
	ImageWidth  int
	ImageHeight int
	LineClamp   int
	SideBySide  bool
	Eager       bool // large cards load eagerly, the rest lazily
}

// LayoutFor returns the layout rules for a size variant. Unknown sizes get the
// default variant.
func LayoutFor(size CardSize) CardLayout {
	switch size {
	case SizeLarge:
		return CardLayout{ImageWidth: 1200, ImageHeight: 675, LineClamp: 3, Eager: true}
	case SizeSmall:
		return CardLayout{ImageWidth: 400, ImageHeight: 225, LineClamp: 2, SideBySide: true}
	default:
		return CardLayout{ImageWidth: 600, ImageHeight: 338, LineClamp: 3}
	}
}

// Card is one fully resolved article presentation. Each card owns its image,
// favicon, and layout state exclusively; nothing here is shared across cards.
type Card struct {
	ID          string
	Title       string
	Summary     string
	URL         string
	Source      string
	Category    string
	DisplayDate string
	PublishedAt time.Time
	Size        CardSize
	Layout      CardLayout
	ImageSrc    string
	Placeholder bool   // ImageSrc is the synthesized placeholder
	FaviconSrc  string // empty hides the favicon element
}

// Page is the rendered partition: one primary card, up to three secondary
// cards, and the remaining set.
type Page struct {
	Primary     *Card
	Secondary   []Card
	Remaining   []Card
	FeedFailed  bool
	GeneratedAt time.Time
}

func (p Page) Empty() bool {
	return p.Primary == nil && len(p.Secondary) == 0 && len(p.Remaining) == 0
}

type CardService interface {
	// BuildPage resolves layout, image, and favicon sources for every article
	// in the timeline.
	BuildPage(ctx context.Context, timeline Timeline, feedFailed bool) Page
	// PlaceholderURL synthesizes the deterministic placeholder address for an
	// article title at a size variant's dimensions.
	PlaceholderURL(title string, size CardSize) string
}

type CardConfig struct {
	PlaceholderBase string
	FaviconBase     string
	ImageHosts      []string
	ClientFactory   *network.ClientFactory
	ProbeFavicons   bool
}

type cardService struct {
	placeholderBase string
	faviconBase     string
	imageHosts      map[string]struct{}
	clientFactory   *network.ClientFactory
	probeFavicons   bool
	sanitizer       *bluemonday.Policy
}

func NewCardService(cfg CardConfig) CardService {
	hosts := make(map[string]struct{}, len(cfg.ImageHosts))
	for _, h := range cfg.ImageHosts {
		hosts[h] = struct{}{}
	}
	factory := cfg.ClientFactory
	if factory == nil {
		factory = network.NewClientFactory()
	}
	return &cardService{
		placeholderBase: cfg.PlaceholderBase,
		faviconBase:     cfg.FaviconBase,
		imageHosts:      hosts,
		clientFactory:   factory,
		probeFavicons:   cfg.ProbeFavicons,
		sanitizer:       bluemonday.StrictPolicy(),
	}
}

// ArticleID derives a stable identity from the article URL. The same article
// keeps the same id across renders and processes.
func ArticleID(articleURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(articleURL)).String()
}

func (s *cardService) BuildPage(ctx context.Context, timeline Timeline, feedFailed bool) Page {
	page := Page{FeedFailed: feedFailed, GeneratedAt: time.Now().UTC()}

	for i, a := range timeline.Featured {
		size := SizeSmall
		if i == 0 {
			size = SizeLarge
		}
		card := s.buildCard(a, size)
		if i == 0 {
			page.Primary = &card
		} else {
			page.Secondary = append(page.Secondary, card)
		}
	}
	for _, a := range timeline.Remaining {
		page.Remaining = append(page.Remaining, s.buildCard(a, SizeDefault))
	}

	if s.probeFavicons {
		s.resolveFavicons(ctx, &page)
	}
	return page
}

func (s *cardService) buildCard(a TimedArticle, size CardSize) Card {
	layout := LayoutFor(size)
	card := Card{
		ID:          ArticleID(a.URL),
		Title:       a.Title,
		Summary:     s.sanitizer.Sanitize(a.Summary),
		URL:         a.URL,
		Source:      a.Source,
		Category:    a.Category,
		DisplayDate: a.DisplayDate(),
		PublishedAt: a.PublishedAt,
		Size:        size,
		Layout:      layout,
		FaviconSrc:  s.faviconURL(a.URL),
	}
	card.ImageSrc, card.Placeholder = s.imageSource(a.Title, a.ImageURL, size)
	return card
}

// imageSource picks the article image when present, routing non-allow-listed
// hosts through the proxy, and falls back to the deterministic placeholder
// otherwise.
func (s *cardService) imageSource(title, imageURL string, size CardSize) (string, bool) {
	if imageURL == "" {
		return s.PlaceholderURL(title, size), true
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Hostname() == "" {
		return s.PlaceholderURL(title, size), true
	}
	if _, ok := s.imageHosts[parsed.Hostname()]; ok {
		return imageURL, false
	}
	return proxyImagePath(imageURL, title, size), false
}

func proxyImagePath(imageURL, title string, size CardSize) string {
	encoded := base64.URLEncoding.EncodeToString([]byte(imageURL))
	return fmt.Sprintf("/api/proxy/image/%s?title=%s&size=%s",
		encoded, url.QueryEscape(title), size)
}

func (s *cardService) PlaceholderURL(title string, size CardSize) string {
	layout := LayoutFor(size)
	seed := uuid.NewSHA1(uuid.NameSpaceURL,
		fmt.Appendf(nil, "%s|%dx%d", title, layout.ImageWidth, layout.ImageHeight))
	return fmt.Sprintf("%s/%s/%d/%d",
		s.placeholderBase, seed.String(), layout.ImageWidth, layout.ImageHeight)
}

// faviconURL derives the favicon address from the article's host. A malformed
// article URL means no favicon is attempted at all.
func (s *cardService) faviconURL(articleURL string) string {
	parsed, err := url.Parse(articleURL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf("%s?domain=%s&sz=64", s.faviconBase, url.QueryEscape(parsed.Hostname()))
}

// resolveFavicons probes each distinct favicon address once and hides the
// favicon on every card whose probe failed. Probes run independently under a
// small concurrency limit; no card's outcome affects another's.
func (s *cardService) resolveFavicons(ctx context.Context, page *Page) {
	cards := make([]*Card, 0, 1+len(page.Secondary)+len(page.Remaining))
	if page.Primary != nil {
		cards = append(cards, page.Primary)
	}
	for i := range page.Secondary {
		cards = append(cards, &page.Secondary[i])
	}
	for i := range page.Remaining {
		cards = append(cards, &page.Remaining[i])
	}

	distinct := make(map[string]bool)
	for _, c := range cards {
		if c.FaviconSrc != "" {
			distinct[c.FaviconSrc] = false
		}
	}
	if len(distinct) == 0 {
		return
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbe)
	for src := range distinct {
		src := src
		g.Go(func() error {
			ok := s.probeFavicon(ctx, src)
			mu.Lock()
			distinct[src] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, c := range cards {
		if c.FaviconSrc != "" && !distinct[c.FaviconSrc] {
			c.FaviconSrc = ""
		}
	}
}

func (s *cardService) probeFavicon(ctx context.Context, faviconURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, faviconURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", config.UserAgent)

	client := s.clientFactory.NewHTTPClient(faviconTimeout)
	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("favicon probe failed",
			"module", "service", "action", "fetch", "resource", "favicon", "result", "failed",
			"error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
