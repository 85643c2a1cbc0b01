package sections_test

import (
	"testing"

	"github.com/siteglean/siteglean"
	"github.com/siteglean/siteglean/mock"
	"github.com/siteglean/siteglean/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, candidates ...siteglean.SectionCandidate) []siteglean.NormalizedSection {
	t.Helper()
	return sections.NewClassifier().Classify(candidates, nil)
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("top level h1 block is a hero", func(t *testing.T) {
		t.Parallel()

		got := classify(t, siteglean.SectionCandidate{
			PageURL: "https://example.com/",
			Title:   "Build faster",
			HasH1:   true,
			Depth:   0,
			Source:  "main",
		})

		require.Len(t, got, 1)
		assert.Equal(t, siteglean.SectionHero, got[0].Type)
		assert.InDelta(t, 3.0/4.2, got[0].Confidence, 0.001)
		assert.Contains(t, got[0].Evidence.Signals, "h1_top_level")
	})

	t.Run("contact form with contact keyword is a contact section", func(t *testing.T) {
		t.Parallel()

		got := classify(t, siteglean.SectionCandidate{
			Title:   "Contact us",
			HasForm: true,
		})

		require.Len(t, got, 1)
		assert.Equal(t, siteglean.SectionContact, got[0].Type)
	})

	t.Run("questions make a faq", func(t *testing.T) {
		t.Parallel()

		got := classify(t, siteglean.SectionCandidate{
			Title:         "Common questions",
			QuestionCount: 3,
		})

		require.Len(t, got, 1)
		assert.Equal(t, siteglean.SectionFAQ, got[0].Type)
	})

	t.Run("weak candidates yield nothing", func(t *testing.T) {
		t.Parallel()

		got := classify(t, siteglean.SectionCandidate{
			Title:   "Miscellaneous",
			Summary: "Some neutral text without any signals.",
		})

		assert.Empty(t, got)
	})

	t.Run("keeps the first winner unless a later one scores strictly higher", func(t *testing.T) {
		t.Parallel()

		first := siteglean.SectionCandidate{
			PageURL:       "https://example.com/",
			Title:         "Frequently asked questions",
			QuestionCount: 5,
		}
		tied := siteglean.SectionCandidate{
			PageURL:       "https://example.com/faq",
			Title:         "Frequently asked questions",
			QuestionCount: 2,
		}

		got := classify(t, first, tied)

		require.Len(t, got, 1)
		assert.Equal(t, "https://example.com/", got[0].Evidence.PageURL)
	})

	t.Run("orders sections by archetype priority", func(t *testing.T) {
		t.Parallel()

		got := classify(t,
			siteglean.SectionCandidate{Source: "footer", LegalLinkCount: 2, Title: "Acme"},
			siteglean.SectionCandidate{Title: "Build faster", HasH1: true, Depth: 0},
			siteglean.SectionCandidate{Title: "Our services", Bullets: []string{"Design", "Build", "Ship"}},
		)

		require.Len(t, got, 3)
		assert.Equal(t, siteglean.SectionHero, got[0].Type)
		assert.Equal(t, siteglean.SectionServices, got[1].Type)
		assert.Equal(t, siteglean.SectionFooter, got[2].Type)
	})

	t.Run("plugin adjustments can change the winner", func(t *testing.T) {
		t.Parallel()

		plugin := &mock.SitePlugin{
			AdjustSectionScoresFn: func(_ siteglean.SectionCandidate, scores map[siteglean.SectionType]float64) {
				scores[siteglean.SectionProjects] = 4.0
			},
		}
		got := sections.NewClassifier().Classify([]siteglean.SectionCandidate{
			{Title: "Our services", Bullets: []string{"Design", "Build"}},
		}, plugin)

		require.Len(t, got, 1)
		assert.Equal(t, siteglean.SectionProjects, got[0].Type)
	})

	t.Run("confidence caps at one", func(t *testing.T) {
		t.Parallel()

		got := classify(t, siteglean.SectionCandidate{
			Title:         "Contact us, get in touch",
			HasForm:       true,
			HasMap:        true,
			QuestionCount: 0,
		})

		require.Len(t, got, 1)
		assert.Equal(t, siteglean.SectionContact, got[0].Type)
		assert.Equal(t, 1.0, got[0].Confidence)
	})
}
