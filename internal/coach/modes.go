// Package coach holds the sales-coaching conversation logic: modes and
// scenarios, keyword skill scoring, and the simulator, feedback and trainer
// agents that sit on top of an llm.Provider.
package coach

import "strings"

type Mode string

const (
	ModePitchPractice      Mode = "pitch_practice"
	ModeInvestorSimulation Mode = "investor_simulation"
	ModeProblemSolving     Mode = "problem_solving"
	ModeMarketAnalysis     Mode = "market_analysis"
	ModeFinancialPlanning  Mode = "financial_planning"
	ModeSalesCoach         Mode = "sales_coach"
)

const salesCoachPrompt = `You are Coachify's AI Sales Coach. Your role is to:
1. Simulate realistic sales conversations
2. Challenge the salesperson with common objections
3. Provide immediate, actionable feedback
4. Help improve specific sales skills
5. Maintain a supportive but challenging tone

Focus on helping the salesperson master high-stakes conversations in a risk-free environment.`

var modePrompts = map[Mode]string{
	ModePitchPractice: `You are a pitch coach. Focus on clarity, value proposition, and delivery.
Help founders perfect their elevator pitch in 3-5 clear sentences.`,
	ModeInvestorSimulation: `You are a VC investor. Ask tough questions about market size, growth strategy,
and financial projections. Be direct but constructive.`,
	ModeProblemSolving: `You are a startup consultant. Help identify and solve specific business
challenges. Focus on actionable solutions.`,
	ModeMarketAnalysis:    `You are a market analyst. Analyze market trends and opportunities.`,
	ModeFinancialPlanning: `You are a financial planner. Help founders plan their financial strategy.`,
	ModeSalesCoach:        salesCoachPrompt,
}

// ParseMode maps a query value onto a Mode; unknown values select the
// sales coach.
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modePrompts[m]; ok {
		return m
	}
	return ModeSalesCoach
}

func (m Mode) SystemPrompt() string {
	if p, ok := modePrompts[m]; ok {
		return p
	}
	return salesCoachPrompt
}

type Scenario struct {
	Name      string   `json:"name"`
	Context   string   `json:"context"`
	KeyPoints []string `json:"key_points"`
}

var scenarios = map[string]Scenario{
	"price_negotiation": {
		Name:      "price_negotiation",
		Context:   "Client thinks the product is too expensive",
		KeyPoints: []string{"value proposition", "ROI discussion", "budget alignment"},
	},
	"product_demo": {
		Name:      "product_demo",
		Context:   "First demo with a potential enterprise client",
		KeyPoints: []string{"feature highlights", "use cases", "technical requirements"},
	},
	"objection_handling": {
		Name:      "objection_handling",
		Context:   "Client has concerns about implementation time",
		KeyPoints: []string{"timeline explanation", "resource planning", "support details"},
	},
}

func LookupScenario(name string) (Scenario, bool) {
	s, ok := scenarios[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}
