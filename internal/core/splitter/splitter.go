package splitter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/civiclab/veritas/internal/core/segment"
)

// Mode selects where segmentation happens.
const (
	ModeInternal = "internal"
	ModeExternal = "external"
)

// Config is the splitter adapter surface from the configuration file.
type Config struct {
	Mode              string
	URL               string
	Token             string
	Timeout           time.Duration
	LongFormThreshold int
	CacheTTL          time.Duration
}

// Adapter delegates segmentation of long-form text to a remote NLP service
// and falls back to the local segmenter on any failure. The caller never
// sees a remote error: a bad response trips the breaker and the local result
// is returned silently.
type Adapter struct {
	cfg     Config
	client  *http.Client
	breaker *Breaker
	cache   *gocache.Cache
}

// New wires the adapter with its breaker instance; the breaker is injected so
// tests can drive its clock.
func New(cfg Config, breaker *Breaker) *Adapter {
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

type splitRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type splitResponse struct {
	Claims []string `json:"claims"`
}

// Split returns segments for the given text. Short text, internal mode, and
// an open breaker all skip the network entirely.
func (a *Adapter) Split(ctx context.Context, text, lang string) []segment.Segment {
	if a.cfg.Mode != ModeExternal || len(text) <= a.cfg.LongFormThreshold {
		return segment.Split(text, lang)
	}

	key := cacheKey(text, lang)
	if cached, found := a.cache.Get(key); found {
		return mapSegments(text, cached.([]string))
	}

	if a.breaker.Open() {
		return segment.Split(text, lang)
	}

	claims, err := a.callRemote(ctx, text, lang)
	if err != nil {
		log.Printf("splitter: remote call failed, falling back to local: %v", err)
		a.breaker.Trip()
		return segment.Split(text, lang)
	}

	a.cache.Set(key, claims, gocache.DefaultExpiration)
	return mapSegments(text, claims)
}

func (a *Adapter) callRemote(ctx context.Context, text, lang string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(splitRequest{Text: text, Lang: lang})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.Token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("splitter returned status %d", resp.StatusCode)
	}

	var parsed splitResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("malformed splitter response: %w", err)
	}
	if len(parsed.Claims) == 0 {
		return nil, fmt.Errorf("splitter returned no claims")
	}
	return parsed.Claims, nil
}

// mapSegments locates each remote claim inside the source text so spans stay
// meaningful; claims the service rephrased get a zero span.
func mapSegments(text string, claims []string) []segment.Segment {
	out := make([]segment.Segment, 0, len(claims))
	for _, c := range claims {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		seg := segment.Segment{Text: c}
		if idx := strings.Index(text, c); idx >= 0 {
			seg.Start = idx
			seg.End = idx + len(c)
		}
		out = append(out, seg)
	}
	return out
}

func cacheKey(text, lang string) string {
	sum := sha256.Sum256([]byte(lang + "\x00" + text))
	return "split:v1:" + hex.EncodeToString(sum[:])
}
