package schedule

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cleanerboard/backend/internal/notify"
	"github.com/cleanerboard/backend/internal/present"
	"github.com/cleanerboard/backend/internal/websocket"
)

// DigestScheduler pushes the daily schedule digest to the configured
// notification channels on a cron schedule, and on demand.
type DigestScheduler struct {
	cron        *cron.Cron
	service     *Service
	notifier    *notify.Notifier
	broadcaster *websocket.EventBroadcaster
	spec        string
	entryID     cron.EntryID
}

// NewDigestScheduler creates a scheduler. spec is standard 5-field cron
// syntax evaluated in the configured timezone; empty disables the
// periodic digest (manual runs still work).
func NewDigestScheduler(service *Service, notifier *notify.Notifier, hub *websocket.Hub, spec string) *DigestScheduler {
	var broadcaster *websocket.EventBroadcaster
	if hub != nil {
		broadcaster = websocket.NewEventBroadcaster(hub)
	}

	return &DigestScheduler{
		cron:        cron.New(cron.WithLocation(service.Location())),
		service:     service,
		notifier:    notifier,
		broadcaster: broadcaster,
		spec:        spec,
	}
}

// Start registers the cron job and starts the scheduler.
func (d *DigestScheduler) Start() error {
	if d.spec == "" {
		log.Println("Digest cron disabled (no schedule configured)")
		return nil
	}

	entryID, err := d.cron.AddFunc(d.spec, func() {
		if _, _, err := d.Run(context.Background(), 0); err != nil {
			log.Printf("Scheduled digest failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling digest %q: %w", d.spec, err)
	}

	d.entryID = entryID
	d.cron.Start()
	log.Printf("Digest scheduled: %s (%s)", d.spec, d.service.Location())
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running job.
func (d *DigestScheduler) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
}

// NextRun returns the next scheduled digest time, or nil when the
// periodic digest is disabled.
func (d *DigestScheduler) NextRun() *time.Time {
	if d.entryID == 0 {
		return nil
	}
	entry := d.cron.Entry(d.entryID)
	if entry.Next.IsZero() {
		return nil
	}
	next := entry.Next
	return &next
}

// Run builds a fresh schedule and pushes it through every enabled
// channel. days <= 0 uses the default window. Returns the digest text
// and one result line per channel.
func (d *DigestScheduler) Run(ctx context.Context, days int) (string, []string, error) {
	days = d.service.ClampDays(days)
	sched, start := d.service.BuildFromToday(ctx, days)
	flats := d.service.Flats()

	text := present.Text(sched, flats)
	rows := present.Rows(sched, flats)

	pdfBytes, err := present.PDF(sched, flats, "Cleaner Schedule")
	if err != nil {
		// The digest is still worth sending without the attachment.
		log.Printf("Digest PDF render failed: %v", err)
		pdfBytes = nil
	}
	pdfName := fmt.Sprintf("cleaner_schedule_%s.pdf", time.Now().In(d.service.Location()).Format("20060102"))

	results := d.notifier.SendDigest(ctx, text, rows, pdfBytes, pdfName)

	log.Printf("Digest run complete: start=%s days=%d channels=%d", start, days, len(results))
	if d.broadcaster != nil {
		d.broadcaster.BroadcastDigestSent(days, d.notifier.Channels(), results)
	}

	return text, results, nil
}
