package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type WebSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

type duckDuckGo struct {
	log      *logger.Logger
	baseURL  string
	client   *http.Client
	maxItems int
}

// NewDuckDuckGo returns a WebSearcher over the DuckDuckGo instant answer API.
// An empty baseURL uses the public endpoint.
func NewDuckDuckGo(log *logger.Logger, baseURL string, timeout time.Duration) WebSearcher {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.duckduckgo.com/"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &duckDuckGo{
		log:      log.With("service", "DuckDuckGo"),
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		maxItems: 5,
	}
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	Answer        string     `json:"Answer"`
	Definition    string     `json:"Definition"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

func (d *duckDuckGo) Search(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}
	var out ddgResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 2<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode duckduckgo response: %w", err)
	}
	return d.format(out), nil
}

func (d *duckDuckGo) format(r ddgResponse) string {
	var parts []string
	for _, s := range []string{r.Answer, r.AbstractText, r.Definition} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	var walk func([]ddgTopic)
	walk = func(topics []ddgTopic) {
		for _, t := range topics {
			if len(parts) >= d.maxItems {
				return
			}
			if len(t.Topics) > 0 {
				walk(t.Topics)
				continue
			}
			if s := strings.TrimSpace(t.Text); s != "" {
				parts = append(parts, s)
			}
		}
	}
	walk(r.RelatedTopics)
	return strings.Join(parts, "\n")
}

type SearchDeps struct {
	Log *logger.Logger
	Web WebSearcher
}

// SearchWeb adds web results for the query. Failures degrade to no results.
func SearchWeb(ctx context.Context, deps SearchDeps, st *State) error {
	text := ""
	if deps.Web != nil {
		res, err := deps.Web.Search(ctx, st.Query)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			deps.Log.Warn("Web search failed", "error", err)
		} else {
			text = res
		}
	}
	st.Contexts = append(st.Contexts, Context{Source: SourceWebSearch, Content: text})
	return nil
}
