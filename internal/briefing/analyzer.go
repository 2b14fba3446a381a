package briefing

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/briefd/internal/document"
	"github.com/fyrsmithlabs/briefd/internal/gather"
	"github.com/fyrsmithlabs/briefd/internal/insight"
	"github.com/fyrsmithlabs/briefd/internal/relevance"
)

const tracerName = "github.com/fyrsmithlabs/briefd/internal/briefing"
const meterName = "briefing"

// Config tunes the analyzer.
type Config struct {
	// Workers bounds the classification worker pool; 0 means GOMAXPROCS.
	Workers int
	// Rules tunes the relevance classifier.
	Rules relevance.Config
}

// Analyzer is the context filter/aggregator. It is stateless across calls:
// each Analyze run derives its own topic keywords from the meeting title.
type Analyzer struct {
	cfg       Config
	extractor *insight.Extractor
	logger    *zap.Logger

	tracer trace.Tracer
	meter  metric.Meter

	itemsAnalyzed metric.Int64Counter
	itemsIncluded metric.Int64Counter
	itemsExcluded metric.Int64Counter
	analysisTime  metric.Float64Histogram
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(cfg Config, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Rules.RecencyWindowDays == 0 && cfg.Rules.MaxAgeDays == 0 {
		cfg.Rules = relevance.DefaultConfig()
	}

	a := &Analyzer{
		cfg:       cfg,
		extractor: insight.NewExtractor(),
		logger:    logger.Named("briefing"),
		tracer:    otel.Tracer(tracerName),
		meter:     otel.Meter(meterName),
	}

	if err := a.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return a, nil
}

func (a *Analyzer) initMetrics() error {
	var err error

	a.itemsAnalyzed, err = a.meter.Int64Counter(
		"briefd.briefing.items_analyzed_total",
		metric.WithDescription("Total raw items (emails and chat messages) classified"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return err
	}

	a.itemsIncluded, err = a.meter.Int64Counter(
		"briefd.briefing.items_included_total",
		metric.WithDescription("Items that survived tier filtering and redaction"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return err
	}

	a.itemsExcluded, err = a.meter.Int64Counter(
		"briefd.briefing.items_excluded_total",
		metric.WithDescription("Items excluded by tier or redaction"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return err
	}

	a.analysisTime, err = a.meter.Float64Histogram(
		"briefd.briefing.analysis_duration_seconds",
		metric.WithDescription("Wall time for one full pool analysis"),
		metric.WithUnit("s"),
	)
	return err
}

// Analyze classifies every item in the pool, applies redaction for
// external-attendee meetings, extracts insights, and returns the ranked
// context bundle. now is the evaluation clock; a zero value means the
// current time.
//
// Classification is total: every raw item is classified before any
// inclusion decision, so the counters always satisfy
// included + excluded == analyzed.
func (a *Analyzer) Analyze(ctx context.Context, pool *gather.Pool, now time.Time) (*FilteredContext, error) {
	if pool == nil {
		return nil, errors.New("pool cannot be nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	ctx, span := a.tracer.Start(ctx, "briefing.analyze",
		trace.WithAttributes(
			attribute.String("meeting.id", pool.Meeting.ID),
			attribute.Int("pool.emails", len(pool.Emails)),
			attribute.Int("pool.messages", len(pool.Messages)),
		),
	)
	defer span.End()

	start := time.Now()
	classifier := relevance.NewClassifier(pool.Meeting.Title, a.cfg.Rules)
	hasExternal := pool.Meeting.HasExternalAttendees()

	// Phase 1: classify everything. Items are independent, so this runs on
	// a bounded worker pool writing into position-indexed slices; output
	// order stays deterministic regardless of worker count.
	emailAnalyses := make([]relevance.Analysis, len(pool.Emails))
	messageAnalyses := make([]relevance.Analysis, len(pool.Messages))
	a.classifyAll(pool, classifier, now, emailAnalyses, messageAnalyses)

	// Phase 2: sequential reduction in original input order, so
	// first-seen-wins dedup is reproducible.
	fc := &FilteredContext{
		Emails:    []AnalyzedEmail{},
		Messages:  []AnalyzedMessage{},
		Documents: []document.ExtractedDocument{},
	}

	for i, e := range pool.Emails {
		an := emailAnalyses[i]
		fc.TotalItemsAnalyzed++

		if !an.Included() || (hasExternal && an.Sensitive) {
			fc.ItemsExcluded++
			continue
		}

		fc.Emails = append(fc.Emails, AnalyzedEmail{Email: e, Analysis: an})
		fc.ItemsIncluded++
		a.collectInsights(fc, e.BodyText, "Email: "+e.Subject, an)
	}

	for i, m := range pool.Messages {
		an := messageAnalyses[i]
		fc.TotalItemsAnalyzed++

		if !an.Included() || (hasExternal && an.Sensitive) {
			fc.ItemsExcluded++
			continue
		}

		fc.Messages = append(fc.Messages, AnalyzedMessage{Message: m, Analysis: an})
		fc.ItemsIncluded++
		a.collectInsights(fc, m.Text, "Chat #"+m.Channel, an)
	}

	// Documents take a separate, simpler path: sensitivity only.
	for _, doc := range pool.ExtractedDocuments() {
		if hasExternal && relevance.SensitiveText(doc.Filename+" "+doc.Text) {
			continue
		}
		fc.Documents = append(fc.Documents, doc)
		a.summarizeDocument(fc, doc)
	}

	sortByRelevance(fc)

	fc.ActionItems = dedupStrings(fc.ActionItems)
	fc.Commitments = dedupStrings(fc.Commitments)
	fc.Blockers = dedupStrings(fc.Blockers)
	fc.UnansweredQuestions = dedupStrings(fc.UnansweredQuestions)
	fc.HealthMentions = dedupStrings(fc.HealthMentions)

	a.recordMetrics(ctx, fc, time.Since(start))

	a.logger.Info("context analyzed",
		zap.String("meeting_id", pool.Meeting.ID),
		zap.Int("analyzed", fc.TotalItemsAnalyzed),
		zap.Int("included", fc.ItemsIncluded),
		zap.Int("excluded", fc.ItemsExcluded),
		zap.Int("documents", len(fc.Documents)),
		zap.Bool("external_attendees", hasExternal),
	)

	return fc, nil
}

// classifyAll fans item classification out over the worker pool.
func (a *Analyzer) classifyAll(pool *gather.Pool, classifier *relevance.Classifier, now time.Time, emails, messages []relevance.Analysis) {
	workers := a.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	total := len(pool.Emails) + len(pool.Messages)
	if total == 0 {
		return
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if idx < len(pool.Emails) {
					emails[idx] = classifier.ClassifyEmail(pool.Emails[idx], now)
				} else {
					j := idx - len(pool.Emails)
					messages[j] = classifier.ClassifyMessage(pool.Messages[j], now)
				}
			}
		}()
	}
	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// collectInsights appends the snippets extracted from one included item.
func (a *Analyzer) collectInsights(fc *FilteredContext, text, source string, an relevance.Analysis) {
	ins := a.extractor.Extract(text, source, an)
	fc.ActionItems = append(fc.ActionItems, ins.ActionItems...)
	fc.Commitments = append(fc.Commitments, ins.Commitments...)
	fc.Blockers = append(fc.Blockers, ins.Blockers...)
	fc.UnansweredQuestions = append(fc.UnansweredQuestions, ins.Questions...)
	fc.HealthMentions = append(fc.HealthMentions, ins.HealthMentions...)
}

// summarizeDocument adds the per-document summary record and feeds the
// flattened metrics list.
func (a *Analyzer) summarizeDocument(fc *FilteredContext, doc document.ExtractedDocument) {
	metrics := document.KeyMetrics(doc.Text)
	structure := document.ExtractStructure(doc.Text)

	fc.KeyMetrics = append(fc.KeyMetrics, metrics...)

	headings := structure.Headings
	if len(headings) > 5 {
		headings = headings[:5]
	}
	topMetrics := metrics
	if len(topMetrics) > 5 {
		topMetrics = topMetrics[:5]
	}

	fc.DocumentSummaries = append(fc.DocumentSummaries, DocumentSummary{
		Filename:   doc.Filename,
		SourceType: doc.SourceType,
		WordCount:  doc.WordCount(),
		Headings:   headings,
		HasTables:  structure.Tables > 0,
		KeyMetrics: topMetrics,
		Preview:    doc.Preview(200),
	})
}

// sortByRelevance orders both item lists by (tier ascending, score
// descending). The sort is stable: equal (tier, score) pairs keep their
// original relative order.
func sortByRelevance(fc *FilteredContext) {
	sort.SliceStable(fc.Emails, func(i, j int) bool {
		if fc.Emails[i].Tier != fc.Emails[j].Tier {
			return fc.Emails[i].Tier < fc.Emails[j].Tier
		}
		return fc.Emails[i].Score > fc.Emails[j].Score
	})
	sort.SliceStable(fc.Messages, func(i, j int) bool {
		if fc.Messages[i].Tier != fc.Messages[j].Tier {
			return fc.Messages[i].Tier < fc.Messages[j].Tier
		}
		return fc.Messages[i].Score > fc.Messages[j].Score
	})
}

// dedupStrings removes exact duplicates preserving first-seen order.
func dedupStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (a *Analyzer) recordMetrics(ctx context.Context, fc *FilteredContext, elapsed time.Duration) {
	if a.itemsAnalyzed != nil {
		a.itemsAnalyzed.Add(ctx, int64(fc.TotalItemsAnalyzed))
	}
	if a.itemsIncluded != nil {
		a.itemsIncluded.Add(ctx, int64(fc.ItemsIncluded))
	}
	if a.itemsExcluded != nil {
		a.itemsExcluded.Add(ctx, int64(fc.ItemsExcluded))
	}
	if a.analysisTime != nil {
		a.analysisTime.Record(ctx, elapsed.Seconds())
	}
}
