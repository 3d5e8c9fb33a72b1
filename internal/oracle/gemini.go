package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const maxOutputTokens = 8192

// GenerateFunc sends a prompt to a model and returns the text of the response.
type GenerateFunc func(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)

// Gemini is the oracle backed by the Gemini API.
type Gemini struct {
	generate GenerateFunc
	printer  *message.Printer
}

var _ Oracle = (*Gemini)(nil)

// NewGemini creates an oracle for the Gemini API.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewWithGenerator(func(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}), nil
}

// NewWithGenerator creates an oracle that uses generate for all requests.
func NewWithGenerator(generate GenerateFunc) *Gemini {
	return &Gemini{
		generate: generate,
		printer:  message.NewPrinter(language.AmericanEnglish),
	}
}

func jsonConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  maxOutputTokens,
	}
}

// The board must be able to discuss layoffs and school closures.
func boardConfig() *genai.GenerateContentConfig {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}

	return &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutputTokens,
		SafetySettings:  settings,
	}
}

func (g *Gemini) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%d", d.IntPart())
}

func (g *Gemini) text(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	text, err := g.generate(ctx, prompt, config)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *Gemini) Briefing(ctx context.Context, district simulation.District) (Briefing, error) {
	prompt := fmt.Sprintf(`Act as a Forensic Education Financial Auditor for the state of %[1]s.

OBJECTIVE: Retrieve ACTUAL PUBLIC RECORDS for:
District: %[2]s
Location: %[3]s

INSTRUCTIONS:
1. Structural Deficit: Search your knowledge base for recent (2023-2025) news articles, state audit reports, or board meeting minutes regarding this specific district's budget.
   - If they have a reported deficit, use that EXACT number (e.g., -$35M).
   - If no specific news exists, estimate based on the %[1]s per-pupil funding formula and recent enrollment trends for this area.
2. Community Trust: Assess trust based on HEADLINES. (e.g., recent strikes? failed bonds? superintendent turnover? = Low Trust).
3. Federal Grants: Estimate the remaining ESSER III / ARPA cliff based on Title I allocations for this district.

RETURN ONLY RAW JSON:
{
  "archetype": "urban" | "suburban" | "rural",
  "title": "String (e.g. 'Urban / $35M Structural Deficit')",
  "description": "String (2-3 sentences citing the specific context/news if available)",
  "initialState": {
    "year": 2025,
    "enrollment": number,
    "revenue": { "local": number, "state": number, "federalOneTime": number },
    "expenditures": { "personnel": number, "operations": number, "fixed": number },
    "fundBalance": number,
    "structuralGap": number,
    "communityTrust": number
  }
}`, district.State, district.Name, district.Location)

	text, err := g.text(ctx, prompt, &genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return Briefing{}, err
	}

	var b Briefing
	if err := parseJSON(text, &b); err != nil {
		return Briefing{}, err
	}
	return validateBriefing(b)
}

func (g *Gemini) DistrictID(ctx context.Context, district simulation.District) (string, error) {
	prompt := fmt.Sprintf("Return the 7-digit NCES District ID for %q in %s. Return ONLY the 7-digit string.", district.Name, district.State)

	text, err := g.text(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	return parseDistrictID(text)
}

func (g *Gemini) Roster(ctx context.Context, district simulation.District, financials *opendata.Financials) ([]simulation.School, error) {
	var facts strings.Builder
	if financials != nil {
		fmt.Fprintf(&facts, `
*** KNOWN FINANCIAL FACTS (FROM US CENSUS) ***
- Total Revenue: %s
- Total Expenditure: %s
- Salary Expenditure: %s
- Federal Rev (Proxy for Grants): %s

INSTRUCTION: Use these EXACT numbers for the financial baseline. Do not estimate them.
`, g.money(financials.Revenue), g.money(financials.Expenditure), g.money(financials.Salaries), g.money(financials.FederalRevenue))
	}

	prompt := fmt.Sprintf(`Context: We are simulating %[1]s in %[2]s.
%[3]s
TASK: RETRIEVE THE OFFICIAL SCHOOL ROSTER (NCES / State Dept of Education Data).

1. List EVERY SINGLE SCHOOL in this district.
2. DO NOT TRUNCATE THE LIST.
3. For each school, provide:
   - Real Name (e.g., "Lincoln High")
   - Type (Elementary/Middle/High)
   - Estimated Enrollment
   - Poverty Rate (Free/Reduced Lunch %%)
   - Academic Proficiency (Math/ELA %%) based on %[2]s standardized test averages for that demographic.

RETURN ONLY RAW JSON:
{
  "initialSchools": [
    { "id": "s1", "name": "String", "type": "High"|"Middle"|"Elementary", "enrollment": number, "spendingPerPupil": number, "academicOutcome": { "math": number, "ela": number }, "povertyRate": number, "principal": "String", "staffing": { "senior": number, "junior": number } }
  ]
}`, district.Name, district.State, facts.String())

	text, err := g.text(ctx, prompt, jsonConfig())
	if err != nil {
		return nil, err
	}

	var roster struct {
		InitialSchools []opendata.Record `json:"initialSchools"`
	}
	if err := parseJSON(text, &roster); err != nil {
		return nil, err
	}

	// Generated records carry finance and assessment fields together
	schools := opendata.Harmonize(roster.InitialSchools, roster.InitialSchools)
	if len(schools) == 0 {
		return nil, fmt.Errorf("%w: roster has no schools", ErrInvalidResponse)
	}
	return schools, nil
}

func (g *Gemini) proposalLines(decisions []simulation.Card, withImpact bool) string {
	var lines strings.Builder
	for _, d := range decisions {
		if d.Selected == simulation.SelectionNone {
			continue
		}

		if d.Selected == simulation.SelectionReject {
			fmt.Fprintf(&lines, "- REJECTED/CUT: %s", d.Title)
		} else {
			fmt.Fprintf(&lines, "- FUNDED via %s: %s", d.Selected, d.Title)
		}

		if withImpact {
			fmt.Fprintf(&lines, " (Impact: %s) [Risk: %s]", g.money(d.Cost), d.RiskFactor)
		}
		lines.WriteString("\n")
	}
	return lines.String()
}

func (g *Gemini) Verdict(ctx context.Context, req VerdictRequest) (simulation.Verdict, error) {
	prompt := fmt.Sprintf(`You are the School Board for a %s school district.

Context: %s

Current Financial State:
- Structural Deficit: %s (Positive is surplus, Negative is deficit)
- Projected Fund Balance: %s
- Community Trust: %d/100

The Superintendent has proposed the following:
%s
Superintendent's Narrative to the Board:
%q

Your Task: Vote on this budget proposal.

Guidelines for your vote:
1. If the Structural Deficit is significantly negative (worse than -$1M), you should likely REJECT it unless the narrative is incredibly persuasive or trust is very high.
2. If Community Trust is below 50, you are skeptical and looking for reasons to reject.
3. If 'Fiscal Cliff' moves (paying recurring costs with one-time money) are present, mention them as a concern.
4. If they cut popular programs (High Risk) without good justification, reject it.
5. If the budget is balanced and invests in students, approve it enthusiastically, but always explain your specific reasons in the feedback.

CRITICAL: Return a raw JSON object (and nothing else). Do not use markdown code blocks.
Structure:
{
  "approved": boolean,
  "voteCount": string,
  "feedback": string
}`, req.Title, req.Description, g.money(req.State.StructuralGap), g.money(req.State.FundBalance),
		req.State.CommunityTrust, g.proposalLines(req.Decisions, true), req.Narrative)

	text, err := g.text(ctx, prompt, boardConfig())
	if err != nil {
		return simulation.Verdict{}, err
	}

	var v verdictResponse
	if err := parseJSON(text, &v); err != nil {
		return simulation.Verdict{}, err
	}
	return v.validate()
}

func (g *Gemini) Chat(ctx context.Context, req ChatRequest) (string, error) {
	result := "Rejected"
	if req.Verdict.Approved {
		result = "Approved"
	}

	var history strings.Builder
	for _, m := range req.History {
		speaker := "Superintendent"
		if m.Role == simulation.RoleBoard {
			speaker = "Board"
		}
		fmt.Fprintf(&history, "%s: %s\n", speaker, m.Text)
	}

	prompt := fmt.Sprintf(`You are the School Board for a %s school district.

Context:
- We just voted on the Superintendent's budget.
- Result: %s (%s).
- Board's Initial Feedback: %q

Financial Snapshot:
- Structural Deficit: %s
- Trust: %d/100

The Budget Proposal in question:
%s
Conversation so far:
%s
User Question: %q

Task: Respond conversationally as the School Board.
- Be professional but firm.
- If the user asks for advice, explain WHY specific choices (like cutting popular programs or failing to balance the deficit) caused the vote result.
- Keep response concise (2-3 sentences).`, req.Title, req.Verdict.VoteCount, result, req.Verdict.Feedback,
		g.money(req.State.StructuralGap), req.State.CommunityTrust, g.proposalLines(req.Decisions, false),
		history.String(), req.Message)

	text, err := g.text(ctx, prompt, nil)
	if err != nil {
		if errors.Is(err, ErrEmptyResponse) {
			return "The Board has no further comment.", nil
		}
		return "", err
	}
	return text, nil
}

func (g *Gemini) Fact(ctx context.Context) (string, error) {
	return g.text(ctx, "Generate a single, surprising, one-sentence statistic about US school district finance or budgeting. It should be educational.", nil)
}
