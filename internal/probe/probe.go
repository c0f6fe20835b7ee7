// Package probe verifies daily that the deployed relay answers the
// reserved diagnostic command with the expected build string.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/api"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/relay"
)

type Prober struct {
	cron  *cron.Cron
	url   string
	httpc *http.Client
}

func New(relayURL string) *Prober {
	return &Prober{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		url:   relayURL,
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

// Start schedules the probe with a cron expression (UTC).
func (p *Prober) Start(schedule string) error {
	_, err := p.cron.AddFunc(schedule, func() {
		if err := p.Run(context.Background()); err != nil {
			log.Printf("deployment probe failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule probe: %w", err)
	}
	p.cron.Start()
	log.Printf("deployment probe scheduled (%s, UTC)", schedule)
	return nil
}

func (p *Prober) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
}

// Run sends the diagnostic keyword once and checks the verification reply.
func (p *Prober) Run(ctx context.Context) error {
	body, _ := json.Marshal(api.Request{Message: relay.VersionKeyword})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("probe request failed: %w", err)
	}
	defer httpResp.Body.Close()

	var resp api.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("failed to decode probe response: %w", err)
	}
	if !resp.Success || !strings.HasPrefix(resp.Reply, "VERIFIED:") {
		return fmt.Errorf("unexpected probe reply: %+v", resp)
	}

	log.Printf("deployment probe ok: %s", resp.Reply)
	return nil
}
