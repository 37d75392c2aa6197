package s4

import (
	"regexp"

	"github.com/seenimoa/alphavault/internal/extract"
	"github.com/seenimoa/alphavault/pkg/models"
)

const (
	nameExpr   = extract.NameExpr
	entityDesc = extract.EntityDescExpr
)

// defined matches a defined-term parenthetical such as (“Parent”).
func defined(terms string) string {
	return `\(\s*(?:the\s+)?["“']?(?:` + terms + `)["”']?\s*\)`
}

const (
	money = extract.MoneyExpr
	pct   = extract.PercentExpr
	num   = extract.NumberExpr
	date  = extract.DateExpr
	gap   = `[^$]{0,100}?`
)

// dealTypeRules are tried in order; the first that matches decides the type.
var dealTypeRules = []struct {
	typ  models.DealType
	rule extract.Rule
}{
	{models.DealReverseMerger, extract.NewRule("reverse_merger", extract.KindFlag, `reverse (?:merger|acquisition)`)},
	// A bare "tender offer or exchange offer" is Acquisition Proposal boilerplate
	// in most merger agreements; only an offer actually being made counts.
	{models.DealTenderOffer, extract.NewRule("tender_offer", extract.KindFlag,
		`(?:commence[sd]?|commencement of|launch(?:ed|es)?)\s+(?:a|an|the)\s+(?:cash\s+)?(?:tender|exchange)\s+offer`,
		`\boffer to (?:purchase|exchange) (?:all|any and all)\b`)},
	{models.DealBusinessCombination, extract.NewRule("business_combination", extract.KindFlag, `business combination agreement|special purpose acquisition|\bSPAC\b`)},
	{models.DealMerger, extract.NewRule("merger", extract.KindFlag, `agreement and plan of merger|plan of merger|merger agreement|\bthe merger\b`)},
	{models.DealAcquisition, extract.NewRule("acquisition", extract.KindFlag, `\bacqui(?:re|sition)\b`)},
}

var (
	cashRule  = extract.NewRule("cash", extract.KindFlag, `\bin cash\b|cash consideration|all[- ]cash|cash merger consideration`)
	stockRule = extract.NewRule("stock", extract.KindFlag, `shares of (?:\w+\s+){0,3}common stock|stock consideration|all[- ]stock|exchange ratio`)
	mixedRule = extract.NewRule("mixed", extract.KindFlag, `cash and (?:shares|stock)|mixed consideration|combination of cash and`)
)

var structureRules = extract.Rules{
	extract.NewRule("acquirer", extract.KindText,
		nameExpr+entityDesc+defined(`Parent|Acquir(?:er|or)|Buyer|Purchaser`)),
	extract.NewRule("target", extract.KindText,
		nameExpr+entityDesc+defined(`Company|Target`)),
	extract.NewRule("merger_sub", extract.KindText,
		nameExpr+entityDesc+defined(`Merger\s+Sub(?:sidiary)?|Acquisition\s+Sub|Purchaser\s+Sub`)),
	extract.NewRule("surviving_entity", extract.KindText,
		nameExpr+`\s+(?:continuing\s+|surviving\s+)?as the surviving (?:corporation|company|entity)`,
		`surviving (?:corporation|company|entity)\s+(?:will be|shall be|is)\s+`+nameExpr),
	extract.NewRule("agreement_date", extract.KindDate,
		`plan of merger,?\s+dated(?:\s+as\s+of)?\s+`+date,
		`dated as of\s+`+date),
	extract.NewRule("effective_date", extract.KindDate,
		`effective (?:date|time)[^.]{0,80}?`+date,
		`expected to (?:close|be completed|be consummated)\s+(?:in|by|during|on)\s+(?:the\s+)?((?:first|second|third|fourth)\s+(?:quarter|half)\s+of\s+\d{4}|(?:early|mid|late)[- ]\d{4}|`+extract.DateBareExpr+`|\d{4})`),
}

var termRules = extract.Rules{
	extract.NewRule("deal_value", extract.KindMoney,
		`aggregate (?:consideration|purchase price|transaction value|merger consideration)`+gap+money,
		`(?:transaction|deal|merger|acquisition) (?:is )?valued at`+gap+money,
		`total (?:consideration|transaction value|purchase price)`+gap+money,
		`purchase price of`+gap+money),
	extract.NewRule("break_up_fee", extract.KindMoney,
		`(?:pay|payment of)[^$.]{0,60}?(?:a|the) (?:termination|break[- ]?up) fee (?:of|equal to)`+gap+money,
		`(?:termination|break[- ]?up) fee of`+gap+money,
		`(?:termination|break[- ]?up) fee`+gap+money),
	extract.NewRule("exchange_ratio", extract.KindNumber,
		`exchange ratio (?:of|equal to|is|will be)\s+`+num,
		`receive\s+(\d+(?:\.\d+)?)\s+(?:shares?|of a share)\s+of`),
	extract.NewRule("premium", extract.KindPercent,
		`premium of (?:approximately\s+)?`+pct,
		pct+`\s+premium`),
	extract.NewRule("price_per_share", extract.KindNumber,
		`\$\s*(\d+(?:\.\d+)?)\s+per share`,
		`\$\s*(\d+(?:\.\d+)?)\s+in cash,?\s+(?:without interest,?\s+)?(?:for|per) each`),
	extract.NewRule("enterprise_value", extract.KindMoney, `enterprise value`+gap+money),
	extract.NewRule("equity_value", extract.KindMoney, `equity value`+gap+money),
	extract.NewRule("debt_financing", extract.KindMoney,
		`(?:debt financing|term loan|bridge (?:loan|facility)|senior (?:unsecured )?notes)`+gap+money,
		money+`\s+(?:of\s+)?(?:committed\s+)?(?:debt financing|bridge (?:loan|facility)|term loan)`),
	extract.NewRule("equity_financing", extract.KindMoney, `equity (?:financing|commitment)`+gap+money),
	extract.NewRule("cash_on_hand", extract.KindFlag, `cash on hand|existing cash`),
	extract.NewRule("committed", extract.KindFlag, `commitment letter|committed financing|fully committed`),
}

// regulatoryRules list every authority the deal may need, in output order.
// The HSR Act implies both FTC and DOJ review.
var regulatoryRules = []struct {
	authority models.Authority
	desc      string
	rule      extract.Rule
}{
	{models.AuthorityFTC, "Antitrust review by the Federal Trade Commission",
		extract.NewRule("ftc", extract.KindFlag, `Hart-Scott-Rodino|\bHSR Act\b|Federal Trade Commission|\bFTC\b`)},
	{models.AuthorityDOJ, "Antitrust review by the Department of Justice",
		extract.NewRule("doj", extract.KindFlag, `Hart-Scott-Rodino|\bHSR Act\b|Department of Justice|\bDOJ\b|Antitrust Division`)},
	{models.AuthoritySEC, "Registration statement declared effective by the SEC",
		extract.NewRule("sec", extract.KindFlag, `registration statement[^.]{0,80}?(?:declared|become|becomes) effective|Securities and Exchange Commission`)},
	{models.AuthorityCFIUS, "Clearance by the Committee on Foreign Investment in the United States",
		extract.NewRule("cfius", extract.KindFlag, `\bCFIUS\b|Committee on Foreign Investment`)},
	{models.AuthorityEC, "Clearance by the European Commission",
		extract.NewRule("ec", extract.KindFlag, `European Commission|EU Merger Regulation|\bEUMR\b`)},
	{models.AuthorityShareholders, "Approval by stockholders",
		extract.NewRule("shareholders", extract.KindFlag, shareholderApproval)},
}

const shareholderApproval = `(?:stockholder|shareholder) approval|approval of (?:the\s+)?(?:\w+\s+)?(?:stockholders|shareholders)|(?:stockholders|shareholders)[^.]{0,60}?(?:vote|asked) to (?:approve|adopt)|adopt(?:ion of)? the merger agreement`

var conditionRules = []struct {
	typ, desc string
	rule      extract.Rule
}{
	{"regulatory", "Expiration or termination of the applicable antitrust waiting period",
		extract.NewRule("waiting_period", extract.KindFlag, `expiration or termination of (?:the|any) (?:applicable )?waiting period|antitrust approvals?`)},
	{"shareholder_approval", "Approval of the merger by stockholders",
		extract.NewRule("shareholder_approval", extract.KindFlag, shareholderApproval)},
	{"registration_effectiveness", "Effectiveness of the registration statement on Form S-4",
		extract.NewRule("effectiveness", extract.KindFlag, `registration statement[^.]{0,80}?(?:declared|become|becomes|been) effective`)},
	{"listing", "Approval for listing of the shares to be issued",
		extract.NewRule("listing", extract.KindFlag, `approv(?:ed|al) for listing on (?:the )?(?:NYSE|Nasdaq|New York Stock Exchange)`)},
	{"no_injunction", "Absence of any law or order prohibiting the merger",
		extract.NewRule("no_injunction", extract.KindFlag, `no (?:law|order|injunction)[^.]{0,60}?(?:prohibit|enjoin|restrain)|absence of any (?:law|injunction|order)`)},
	{"no_material_adverse_effect", "No material adverse effect on either party",
		extract.NewRule("no_mae", extract.KindFlag, `(?:no|absence of (?:a|any)) material adverse (?:effect|change)`)},
	{"representations", "Accuracy of representations and warranties",
		extract.NewRule("representations", extract.KindFlag, `accuracy of (?:the\s+)?(?:\w+\s+)?representations and warranties`)},
	{"covenants", "Performance of covenants in all material respects",
		extract.NewRule("covenants", extract.KindFlag, `perform(?:ance|ed)? (?:in all material respects )?(?:of )?(?:all )?(?:the )?(?:covenants|obligations)|compli(?:ance|ed) with (?:the )?covenants`)},
	{"financing", "Receipt of financing",
		extract.NewRule("financing", extract.KindFlag, `receipt of (?:the\s+)?(?:debt\s+)?financing|financing condition`)},
	{"tax_opinion", "Receipt of tax opinions that the merger qualifies as a reorganization",
		extract.NewRule("tax_opinion", extract.KindFlag, `tax opinions?|qualify as a ["“]?reorganization`)},
}

var synergyRules = extract.Rules{
	extract.NewRule("total", extract.KindMoney,
		`(?:total|annual(?:ized)?|run[- ]rate)\s+synergies of`+gap+money,
		money+`\s+(?:of\s+)?(?:(?:total|annual(?:ized)?|run[- ]rate|pre-tax)\s+)*synergies`,
		`synergies of (?:approximately\s+)?`+money),
	extract.NewRule("cost", extract.KindMoney,
		`cost (?:synergies|savings) of`+gap+money,
		money+`\s+(?:in\s+|of\s+)?(?:(?:annual(?:ized)?|run[- ]rate|pre-tax)\s+)*cost (?:synergies|savings)`),
	extract.NewRule("revenue", extract.KindMoney,
		`revenue synergies of`+gap+money,
		money+`\s+(?:in\s+|of\s+)?(?:(?:annual(?:ized)?|run[- ]rate)\s+)*revenue synergies`),
	extract.NewRule("timeframe", extract.KindText,
		`synergies[^.]{0,120}?(?:within|by the end of|over)\s+((?:the\s+)?(?:first\s+)?(?:[\w-]+\s+)?(?:full\s+)?(?:fiscal\s+)?(?:years?|months?)(?:\s+(?:after|following)\s+(?:the\s+)?(?:closing|completion))?)`),
}

var synergySentenceRe = regexp.MustCompile(`(?i)[^.]*synerg[^.]*\.`)

// synergySources are matched only inside sentences that mention synergies.
var synergySources = []struct {
	name string
	re   *regexp.Regexp
}{
	{"procurement", regexp.MustCompile(`(?i)procurement|purchasing`)},
	{"corporate overhead", regexp.MustCompile(`(?i)overhead|corporate functions|general and administrative|SG&A`)},
	{"facilities consolidation", regexp.MustCompile(`(?i)facilit(?:y|ies)|footprint|real estate`)},
	{"supply chain", regexp.MustCompile(`(?i)supply chain|logistics|distribution`)},
	{"technology", regexp.MustCompile(`(?i)technology|IT systems|platform`)},
	{"cross-selling", regexp.MustCompile(`(?i)cross[- ]sell`)},
	{"research and development", regexp.MustCompile(`(?i)research and development|R&D`)},
	{"workforce", regexp.MustCompile(`(?i)headcount|workforce|personnel`)},
	{"manufacturing", regexp.MustCompile(`(?i)manufacturing|production`)},
}

var riskRules = extract.Rules{
	extract.NewRule("integration", extract.KindFlag, `integrat(?:e|ion|ing) (?:the\s+)?(?:\w+\s+)?(?:businesses|operations|companies)|integration (?:risks?|challenges|difficulties)`),
	extract.NewRule("regulatory", extract.KindFlag, `regulatory approvals?[^.]{0,60}?(?:may|might|could) not|(?:may|might) not (?:be able to )?(?:obtain|receive)[^.]{0,40}?approvals?|antitrust`),
	extract.NewRule("financial", extract.KindFlag, `(?:adversely )?affect[^.]{0,40}?financial (?:condition|results)|financial (?:results|performance) (?:may|could)|dilut(?:ion|ive)`),
	extract.NewRule("operational", extract.KindFlag, `operational (?:risks?|challenges|disruption)|disrupt(?:ion)? (?:of|to) (?:the\s+)?(?:\w+\s+)?(?:business|operations)`),
	extract.NewRule("market", extract.KindFlag, `market price[^.]{0,60}?(?:may|could) (?:decline|fluctuate)|market (?:conditions|volatility)|fluctuat(?:e|ions) in the (?:market|trading) price`),
	extract.NewRule("competition", extract.KindFlag, `competit(?:ion|ive|ors)`),
	extract.NewRule("retention", extract.KindFlag, `retain (?:key\s+)?(?:employees|personnel|management)|retention of (?:key\s+)?(?:employees|personnel)|loss of key (?:employees|personnel)`),
	extract.NewRule("litigation", extract.KindFlag, `litigation|lawsuits?|legal proceedings`),
	extract.NewRule("technology", extract.KindFlag, `cyber(?:security)?|information technology systems|technolog(?:y|ical) (?:risks?|changes|failures)|data (?:breach|security)`),
	extract.NewRule("debt", extract.KindFlag, `indebtedness|(?:incur|substantial) (?:additional\s+)?debt|credit rating`),
}

var terminationRules = extract.Rules{
	extract.NewRule("outside_date", extract.KindDate,
		`(?:outside|end) date[^.]{0,80}?`+date,
		`(?:has not been|is not) (?:completed|consummated)[^.]{0,30}?(?:on or )?(?:before|by)\s+`+date),
	extract.NewRule("termination_fee", extract.KindMoney,
		`(?:company|target) termination fee`+gap+money,
		`(?:pay|payment of)[^$.]{0,60}?(?:a|the) termination fee (?:of|equal to)`+gap+money,
		`termination fee of`+gap+money),
	extract.NewRule("reverse_termination_fee", extract.KindMoney,
		`(?:reverse|parent) termination fee`+gap+money),
	extract.NewRule("fiduciary_out", extract.KindFlag, `fiduciary (?:out|duties|exception)|superior proposal`),
	extract.NewRule("matching_rights", extract.KindFlag, `match(?:ing)? rights?|right to match|opportunity to (?:negotiate|match)`),
	extract.NewRule("no_shop", extract.KindFlag, `no[- ]shop|non-solicitation|not (?:to\s+)?(?:solicit|initiate)[^.]{0,40}?(?:acquisition proposal|alternative)`),
	extract.NewRule("go_shop", extract.KindFlag, `go[- ]shop`),
}

var shareholderRules = extract.Rules{
	extract.NewRule("vote_required", extract.KindFlag,
		shareholderApproval,
		`special meeting of (?:\w+\s+)?(?:stockholders|shareholders)`),
	extract.NewRule("required_vote", extract.KindText,
		`affirmative vote of (?:the\s+)?(?:holders of\s+)?((?:a majority|two-thirds|at least [\w%.-]+) of (?:the\s+)?(?:outstanding|votes cast|shares)[^.;]{0,80})`),
	extract.NewRule("meeting_date", extract.KindDate,
		`special meeting[^.]{0,120}?(?:on|held on)\s+(?:(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),\s+)?`+date),
	extract.NewRule("record_date", extract.KindDate,
		`record date[^.]{0,60}?`+date,
		`close of business on\s+`+date),
	extract.NewRule("voting_agreements", extract.KindFlag, `voting (?:and support )?agreements?|support agreements?`),
	extract.NewRule("support_percentage", extract.KindPercent,
		`(?:voting|support) agreements?[^.]{0,160}?(?:approximately\s+)?`+pct,
		pct+`\s+of the (?:outstanding|voting power|total voting)[^.]{0,80}?(?:voting|support) agreements?`),
	extract.NewRule("appraisal_rights", extract.KindFlag, `appraisal rights|dissenters'? rights`),
}
