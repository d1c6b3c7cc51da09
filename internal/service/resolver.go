package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"aipin/internal/models"
	"aipin/internal/search"

	"go.uber.org/zap"
)

const (
	SearchUnavailableMessage = "वेब खोज अस्थायी रूप से अनुपलब्ध है।"
	SearchNoResultsMessage   = "वेब खोज से कोई परिणाम नहीं मिला।"

	searchResultTemplate = "वेब खोज परिणाम:\n\n%s\n\n---\n*Aipin AI द्वारा प्रदान किया गया*"
)

// Searcher is the external lookup used when nothing local matches.
type Searcher interface {
	Lookup(ctx context.Context, query string) search.Result
}

// SpecialPhrase is a fixed trigger checked before the knowledge base.
type SpecialPhrase struct {
	Trigger string
	Reply   func(now time.Time) string
}

var specialPhrases = []SpecialPhrase{
	{
		Trigger: "तुम्हारा नाम क्या है",
		Reply:   fixed("मेरा नाम Aipin है! मैं एक AI असिस्टन्ट हूं।"),
	},
	{
		Trigger: "तुम क्या कर सकते हो",
		Reply: fixed("मैं ये काम कर सकता हूं:\n" +
			"1. प्रश्नों के उत्तर देना\n" +
			"2. कोड लिखने में मदद करना\n" +
			"3. फाइलें प्रोसेस करना\n" +
			"4. वेब से जानकारी खोजना\n" +
			"5. विभिन्न भाषाओं में बातचीत करना"),
	},
	{
		Trigger: "तुम कैसे हो",
		Reply:   fixed("मैं ठीक हूं, धन्यवाद! आप कैसे हैं?"),
	},
	{
		Trigger: "समय बताओ",
		Reply: func(now time.Time) string {
			return "वर्तमान समय: " + now.Format("15:04:05")
		},
	},
	{
		Trigger: "तारीख बताओ",
		Reply: func(now time.Time) string {
			return "आज की तारीख: " + now.Format("02/01/2006")
		},
	},
}

var fillerTemplates = []string{
	"मैं Aipin AI हूं। आपने पूछा: '%s'\n\nयह एक रोचक प्रश्न है! मैं इसके बारे में और जानकारी प्राप्त कर रहा हूं।",
	"प्रश्न: '%s'\n\nमैं इस विषय में विशेषज्ञ नहीं हूं, लेकिन आप इन स्रोतों से जानकारी प्राप्त कर सकते हैं:\n1. विकिपीडिया\n2. कोर्सेरा\n3. खान एकेडमी",
	"'%s' के बारे में:\n\nमेरे पास इस समय सटीक जानकारी नहीं है। क्या आप कोई अन्य प्रश्न पूछना चाहेंगे?",
	"Aipin AI उत्तर: मैं '%s' के बारे में अभी सीख रहा हूं। कृपया थोड़ी देर बाद पूछें।",
}

func fixed(s string) func(time.Time) string {
	return func(time.Time) string { return s }
}

// SpecialPhrases returns the triggers in the order they are checked.
func SpecialPhrases() []SpecialPhrase {
	return append([]SpecialPhrase(nil), specialPhrases...)
}

// FillerTemplates returns the fallback templates; each has one %s for the query.
func FillerTemplates() []string {
	return append([]string(nil), fillerTemplates...)
}

type ResolverOptions struct {
	SearchEnabled bool
	Now           func() time.Time
	Pick          func(n int) int // uniform index in [0, n)
}

// Resolver picks the reply for a query. It holds no per-request state and
// never fails.
type Resolver struct {
	kb       *models.KnowledgeBase
	searcher Searcher
	opts     ResolverOptions
	logger   *zap.Logger
}

func NewResolver(kb *models.KnowledgeBase, searcher Searcher, opts ResolverOptions, logger *zap.Logger) *Resolver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pick == nil {
		opts.Pick = rand.Intn
	}
	return &Resolver{
		kb:       kb,
		searcher: searcher,
		opts:     opts,
		logger:   logger,
	}
}

// WithKnowledge returns a resolver bound to another knowledge base version.
func (r *Resolver) WithKnowledge(kb *models.KnowledgeBase) *Resolver {
	clone := *r
	clone.kb = kb
	return &clone
}

func (r *Resolver) Knowledge() *models.KnowledgeBase {
	return r.kb
}

// Resolve tries, in order: special phrases, the knowledge base, web search
// (only when allowSearch and search is enabled), then a random filler.
func (r *Resolver) Resolve(ctx context.Context, query string, allowSearch bool) string {
	queryLower := strings.ToLower(query)

	for _, p := range specialPhrases {
		if strings.Contains(queryLower, p.Trigger) {
			r.logger.Debug("Resolved by special phrase", zap.String("trigger", p.Trigger))
			return p.Reply(r.opts.Now())
		}
	}

	if entry, ok := r.kb.Match(queryLower); ok {
		r.logger.Debug("Resolved by knowledge base",
			zap.String("category", entry.Category),
			zap.String("topic", entry.Phrase),
		)
		return entry.Answer
	}

	if allowSearch && r.searchEnabled() {
		return r.searchReply(ctx, query, true)
	}

	tmpl := fillerTemplates[r.opts.Pick(len(fillerTemplates))]
	return fmt.Sprintf(tmpl, query)
}

// WebSearch runs only the search step. Failures and a disabled search both
// yield SearchUnavailableMessage.
func (r *Resolver) WebSearch(ctx context.Context, query string) string {
	if !r.searchEnabled() {
		return SearchUnavailableMessage
	}
	return r.searchReply(ctx, query, false)
}

func (r *Resolver) searchEnabled() bool {
	return r.opts.SearchEnabled && r.searcher != nil
}

func (r *Resolver) searchReply(ctx context.Context, query string, attributed bool) string {
	res := r.searcher.Lookup(ctx, query)
	if !res.OK() {
		r.logger.Debug("Search unavailable", zap.Stringer("reason", res.Reason))
		return SearchUnavailableMessage
	}

	body := res.Answer.Format()
	if body == "" {
		body = SearchNoResultsMessage
	}
	if !attributed {
		return body
	}
	return fmt.Sprintf(searchResultTemplate, body)
}
