package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/nestavo/contracts/backend/model"
)

// RiskAnnotator attaches advisory scores and recommendations to a contract at
// generation time. Implementations are advisory only; nothing in the engine
// acts on the scores.
type RiskAnnotator interface {
	Annotate(ct model.ContractType, variables map[string]string) *model.RiskAnalysis
}

// PlaceholderAnnotator is a stand-in scorer: random scores with canned per-type
// text. It is not a risk model. Inject a real implementation (or StaticAnnotator
// in tests) through ContractServiceOptions.
type PlaceholderAnnotator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewPlaceholderAnnotator() *PlaceholderAnnotator {
	return &PlaceholderAnnotator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *PlaceholderAnnotator) Annotate(ct model.ContractType, variables map[string]string) *model.RiskAnalysis {
	a.mu.Lock()
	risk := a.rng.Intn(101)
	compliance := a.rng.Intn(101)
	a.mu.Unlock()

	return &model.RiskAnalysis{
		RiskScore:       risk,
		ComplianceScore: compliance,
		MarketAnalysis:  marketAnalysisFor(ct),
		Recommendations: recommendationsFor(ct),
	}
}

func marketAnalysisFor(ct model.ContractType) string {
	switch ct {
	case model.TypeRental:
		return "Marché locatif tendu dans la zone; loyer cohérent avec les références observées."
	case model.TypePurchase:
		return "Prix au mètre carré dans la moyenne du secteur sur les douze derniers mois."
	case model.TypeVacationRental:
		return "Forte saisonnalité; tarif aligné sur les locations comparables."
	default:
		return "Pas d'analyse de marché disponible pour ce type de contrat."
	}
}

func recommendationsFor(ct model.ContractType) []string {
	switch ct {
	case model.TypeRental:
		return []string{
			"Vérifier les justificatifs de revenus du locataire.",
			"Exiger une attestation d'assurance habitation avant la remise des clés.",
		}
	case model.TypePurchase:
		return []string{
			"Confirmer la situation hypothécaire du bien.",
			"Faire valider la condition suspensive de financement.",
		}
	case model.TypeVacationRental:
		return []string{
			"Demander une caution pour les séjours de plus de sept nuits.",
		}
	default:
		return []string{"Faire relire le contrat par un conseiller."}
	}
}

// StaticAnnotator returns a fixed analysis. Used in tests where deterministic
// output matters.
type StaticAnnotator struct {
	Analysis model.RiskAnalysis
}

func (a *StaticAnnotator) Annotate(ct model.ContractType, variables map[string]string) *model.RiskAnalysis {
	out := a.Analysis
	return &out
}
