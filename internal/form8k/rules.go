package form8k

import (
	"regexp"

	"github.com/seenimoa/alphavault/internal/extract"
)

const (
	name  = extract.NameExpr
	money = extract.MoneyExpr
	pct   = extract.PercentExpr
	date  = extract.DateExpr
	bare  = extract.DateBareExpr
	gap   = `[^$]{0,100}?`
)

var coverRules = extract.Rules{
	extract.NewRule("event_date", extract.KindDate,
		`Date of Report\s*\(Date of earliest event reported\)\s*:?\s*`+date,
		date+`\s*\n?\s*\(?Date of Report`,
		`Date of Report[^:\n]{0,60}:\s*`+date),
}

// agreementTypeExpr names the agreement kinds seen in Items 1.01 and 1.02,
// longest first.
const agreementTypeExpr = `\b(agreement and plan of merger|business combination agreement|merger agreement|asset purchase agreement|stock purchase agreement|securities purchase agreement|share purchase agreement|purchase agreement|amended and restated credit agreement|credit agreement|term loan agreement|loan agreement|note purchase agreement|indenture|license agreement|collaboration agreement|supply agreement|underwriting agreement|employment agreement|separation agreement|lease agreement|agreement)\b`

var agreementRules = extract.Rules{
	extract.NewRule("type", extract.KindText, agreementTypeExpr),
	extract.NewRule("counterparty", extract.KindText,
		`(?:with|by and between the Company and|by and among the Company,?)\s+(?:the\s+)?`+name+extract.EntityDescExpr+`\(`,
		`(?:entered into|executed)[^.]{0,120}?\bwith\s+(?:the\s+)?`+name),
	extract.NewRule("date", extract.KindDate,
		`dated(?: as of)?\s+`+date,
		`On\s+`+date),
	extract.NewRule("value", extract.KindMoney,
		`(?:aggregate|purchase price|consideration|valued at|principal amount|total)`+gap+money),
	extract.NewRule("merger", extract.KindFlag,
		`merger agreement|plan of merger|merger sub|business combination agreement|tender offer`),
	extract.NewRule("termination_fee", extract.KindMoney, `termination fee`+gap+money),
	extract.NewRule("terminated_on", extract.KindDate,
		`terminat(?:ed|ion)[^.]{0,80}?(?:effective|on|as of)\s+`+date),
}

var bankruptcyRules = extract.Rules{
	extract.NewRule("chapter", extract.KindText, `\bChapter\s+(7|9|11|13|15)\b`),
	extract.NewRule("court", extract.KindText,
		`((?:United States\s+)?Bankruptcy Court for the\s+(?-i:(?:[A-Z][a-z]+\s+)?District of [A-Z][a-z]+(?:\s+[A-Z][a-z]+)?))`),
	extract.NewRule("case_number", extract.KindText, `Case\s+No\.?\s*([\dA-Za-z:-]*\d)`),
	extract.NewRule("filing_date", extract.KindDate,
		`On\s+`+date+`[^.]{0,120}?(?:filed|petition)`,
		`(?:filed|petition)[^.]{0,80}?on\s+`+date),
}

var completionRules = extract.Rules{
	extract.NewRule("disposition", extract.KindFlag,
		`completed (?:the|its) (?:sale|disposition|divestiture)|\bsold\b|dispos(?:ed of|ition of)`),
	extract.NewRule("counterparty", extract.KindText,
		`(?:completed (?:the|its) (?:previously announced )?(?:acquisition|purchase) of|acquired)\s+(?:all of the outstanding (?:shares|equity interests) of\s+)?(?:the\s+)?`+name,
		`merger (?:of|with)\s+(?:the\s+)?`+name,
		`(?:sale|disposition|divestiture) of [^.]{0,80}?\bto\s+(?:the\s+)?`+name),
	extract.NewRule("date", extract.KindDate,
		`(?:On|Effective|As of)\s+`+date,
		`(?:completed|consummated|closed)[^.]{0,60}?on\s+`+date),
	extract.NewRule("consideration", extract.KindMoney,
		`(?:aggregate|total|purchase price|consideration)`+gap+money),
	extract.NewRule("cash", extract.KindFlag, `\bin cash\b|cash consideration|all[- ]cash|cash on hand`),
	extract.NewRule("stock", extract.KindFlag, `shares of (?:\w+\s+){0,3}common stock|stock consideration|exchange ratio`),
}

var resultsRules = extract.Rules{
	extract.NewRule("period", extract.KindText,
		`((?:first|second|third|fourth)\s+(?:fiscal\s+)?quarter(?:\s+of)?(?:\s+fiscal)?\s+(?:year\s+)?\d{4})`,
		`((?:quarter|three months|six months|nine months|fiscal year|year)\s+ended\s+`+bare+`)`,
		`(fiscal (?:year )?\d{4})`),
	extract.NewRule("revenue", extract.KindMoney,
		`(?:total\s+|net\s+)?(?:revenues?|net sales|sales) (?:of|was|were|totaled|increased[^$]{0,40}?to|decreased[^$]{0,40}?to)`+gap+money),
	extract.NewRule("net_income", extract.KindMoney,
		`net (?:income|loss|earnings) (?:of|was|were|totaled)`+gap+money),
	extract.NewRule("eps", extract.KindNumber,
		`(?:diluted\s+)?(?:EPS|earnings per (?:diluted\s+)?share)\s+(?:of|was|were)\s+\$\s*(\d+\.\d+)`,
		`\$\s*(\d+\.\d{2})\s+per\s+(?:diluted\s+)?share`),
	extract.NewRule("press_release", extract.KindText, `(?:press release|Exhibit)[^.]{0,60}?\b(99\.\d+)`),
}

var obligationRules = extract.Rules{
	extract.NewRule("type", extract.KindText,
		`\b(revolving credit facility|term loan facility|term loan|credit facility|credit agreement|(?:senior\s+(?:secured\s+|unsecured\s+)?)?notes|convertible (?:senior )?notes|debentures|commercial paper|loan agreement|indenture)\b`),
	extract.NewRule("amount", extract.KindMoney,
		`(?:aggregate principal amount of|principal amount of|borrowings? of|up to|in an amount of)`+gap+money),
	extract.NewRule("rate", extract.KindPercent,
		`(?:interest|accrue)[^.%]{0,60}?(?:rate\s+)?(?:of|equal to|at)\s+`+pct,
		pct+`\s+(?:senior|convertible|notes|per annum)`),
	extract.NewRule("maturity", extract.KindDate,
		`(?:matur(?:e|es|ity date(?: of| is)?)|due)\s+(?:on\s+)?`+date),
}

var exitRules = extract.Rules{
	extract.NewRule("charges", extract.KindMoney,
		`(?:charges?|costs?|expenses?)[^$.]{0,80}?`+money),
	extract.NewRule("workforce", extract.KindText,
		`(\d+(?:\.\d+)?%\s+of (?:its|the Company['’]s|our) (?:global\s+|total\s+)?workforce)`,
		`(?:reduc|eliminat)[^.]{0,60}?(approximately\s+\d[\d,]*\s+(?:employees|positions|roles))`,
		`(\d[\d,]*\s+(?:employees|positions|roles))`),
	extract.NewRule("completion", extract.KindText,
		`(?:substantially\s+)?complet(?:e|ed)[^.]{0,60}?(?:by|in|during|before)\s+(?:the\s+)?((?:end of (?:the )?)?(?:(?:first|second|third|fourth)\s+quarter\s+of\s+)?(?:fiscal\s+)?\d{4}|`+bare+`)`),
}

var impairmentRules = extract.Rules{
	extract.NewRule("amount", extract.KindMoney, `impairment[^$.]{0,80}?`+money, money+`[^.]{0,40}?impairment`),
	extract.NewRule("asset", extract.KindText,
		`\b(goodwill|indefinite-lived intangible assets|intangible assets|long-lived assets|property, plant and equipment|in-process research and development|trade ?names?|equity method investments?|right-of-use assets)\b`),
}

var delistingRules = extract.Rules{
	extract.NewRule("exchange", extract.KindText,
		`\b(New York Stock Exchange|NYSE American|NYSE|The Nasdaq Stock Market|Nasdaq Stock Market|Nasdaq)\b`),
	extract.NewRule("rule", extract.KindText,
		`(?:Listing\s+)?Rule\s+(\d{3,4}(?:\([a-z0-9]+\))*)`,
		`Section\s+(\d{3}\.\d+[A-Z]?)`),
	extract.NewRule("notice_date", extract.KindDate,
		`On\s+`+date+`[^.]{0,120}?(?:received|notif)`,
		`(?:letter|notice|notification)[^.]{0,60}?dated\s+`+date),
	extract.NewRule("cure_deadline", extract.KindDate,
		`regain compliance[^.]{0,100}?(?:until|by|on or before|through)\s+`+date,
		`(?:compliance|cure) period[^.]{0,60}?(?:until|by|ending on|expires on|through)\s+`+date),
}

var accountantRules = extract.Rules{
	extract.NewRule("former", extract.KindText,
		`dismiss(?:ed)?\s+(?:the\s+)?`+name,
		`(?:,|\bthat)\s+`+name+`[^.]{0,60}?(?:resigned|declined to stand for re-?election|was dismissed)`),
	extract.NewRule("new", extract.KindText,
		`(?:engaged|engage|appointed|approved the engagement of|selected)\s+(?:the\s+)?`+name+`[^.]{0,80}?(?:independent|accounting firm|auditor)`),
	extract.NewRule("dismissed", extract.KindFlag, `dismiss(?:ed|al)`),
	extract.NewRule("resigned", extract.KindFlag, `resign(?:ed|ation)|declined to stand for re-?election`),
	extract.NewRule("mentions_disagreement", extract.KindFlag, `disagreements?`),
	extract.NewRule("no_disagreement", extract.KindFlag,
		`(?:there were|there have been|had) no\s+(?:\(\d+\)\s+)?disagreements|no\s+(?:such\s+)?["“]?disagreements|(?:were|have been) not any disagreements|did not have any disagreements`),
}

var nonRelianceRules = extract.Rules{
	extract.NewRule("restatement", extract.KindFlag, `restat(?:e|ed|ement)`),
}

var periodRe = regexp.MustCompile(`(?i)((?:fiscal\s+)?(?:years?|quarters?|three months|six months|nine months|periods?)\s+ended\s+` + bare + `)`)

var controlRules = extract.Rules{
	extract.NewRule("acquirer", extract.KindText,
		`(?:acquired by|became a (?:wholly[- ]owned\s+)?subsidiary of|control of the (?:Company|Registrant) (?:was|has been) (?:acquired|obtained) by|change in control[^.]{0,60}?\bto)\s+(?:the\s+)?`+name),
}

var voteRules = extract.Rules{
	extract.NewRule("meeting_date", extract.KindDate,
		`(?:annual|special) meeting[^.]{0,100}?(?:held on|on)\s+`+date,
		`On\s+`+date+`[^.]{0,80}?(?:annual|special) meeting`),
	extract.NewRule("approved", extract.KindFlag, `\b(?:approved|adopted|elected|ratified)\b`),
	extract.NewRule("rejected", extract.KindFlag,
		`not (?:approved|adopted|ratified|elected)|did not (?:receive|pass|obtain)|\bfailed\b|\brejected\b`),
}

var proposalRe = regexp.MustCompile(`(?im)^[ \t]*(?:Proposal|Item)\s+(?:No\.\s*)?(?:\d+|One|Two|Three|Four|Five|Six|Seven|Eight|Nine|Ten)\s*[:.–-]\s*([^\n]{5,200})$`)

// Item 5.02 sentence classifiers.
var (
	departureRe   = regexp.MustCompile(`(?i)\b(?:resign(?:ed|ation|s)?|retire(?:d|ment|s)?|step(?:ped|s)? down|stepping down|depart(?:ed|ure|s)?|terminated|not stand for re-?election|will not seek re-?election)\b`)
	appointmentRe = regexp.MustCompile(`(?i)\b(?:appoint(?:ed|ment|s)?|elect(?:ed|ion|s)?|named|promot(?:ed|ion)|hired|will (?:join|serve|succeed)|to succeed)\b`)
	personRe      = regexp.MustCompile(`(?:(?:Mr|Ms|Mrs|Dr)\.\s+)?\b([A-Z][a-z]+(?:\s+[A-Z]\.)?(?:\s+[A-Z][A-Za-z'’-]+){1,2})\b`)
	positionRe    = regexp.MustCompile(`\bas\s+(?:the\s+)?(?:Company['’]s\s+|its\s+|our\s+)?(?:new\s+|interim\s+)?((?:[A-Z][A-Za-z-]*,?\s+(?:and\s+)?)*(?:Officer|President|Chairman|Chairperson|Chair|Director|Counsel|Secretary|Treasurer|Controller)(?:\s+of the Board(?: of Directors)?)?|a (?:member of the Board|director)(?: of Directors)?)`)
	boardSeatRe   = regexp.MustCompile(`\bfrom (?:the|its) (Board(?: of Directors)?)`)
	effectiveRe   = regexp.MustCompile(`(?i)effective\s+(?:as of\s+)?(?:on\s+)?` + date + `|effective (immediately)`)
)

// nonNames are leading words that make a capitalized run a title or a
// date rather than a person.
var nonNames = map[string]bool{
	"On": true, "The": true, "Board": true, "Chief": true, "Company": true, "Effective": true,
	"Item": true, "President": true, "Executive": true, "Vice": true, "Senior": true,
	"Director": true, "Directors": true, "In": true, "As": true, "Following": true, "Prior": true,
	"Mr": true, "Ms": true, "Mrs": true, "Dr": true, "General": true, "Interim": true, "Compensation": true,
	"Audit": true, "Nominating": true, "Corporate": true, "Financial": true, "Operating": true,
	"January": true, "February": true, "March": true, "April": true, "May": true, "June": true,
	"July": true, "August": true, "September": true, "October": true, "November": true, "December": true,
}

var (
	signedRe = regexp.MustCompile(`/s/\s*(.+)`)
	titleRe  = regexp.MustCompile(`(?i)^\s*Title\s*:\s*(.+)`)
	nameRe   = regexp.MustCompile(`(?i)^\s*Name\s*:\s*(.+)`)
)

// flagRules are read over the whole filing; item detection adds to them.
var flagRules = extract.Rules{
	extract.NewRule("bankruptcy", extract.KindFlag,
		`\bChapter\s+(?:7|11)\b[^.]{0,80}?(?:bankruptcy|petition)|voluntary petitions?|bankruptcy petition|\breceivership\b`),
	extract.NewRule("delisting", extract.KindFlag,
		`\bdelist(?:ed|ing)?\b|failure to satisfy a continued listing|notice of non-?compliance`),
	extract.NewRule("default", extract.KindFlag,
		`(?:an|the) event of default (?:has occurred|occurred)|default(?:ed)? (?:on|under) (?:its|the) (?:senior\s+)?(?:notes|securities|indenture|credit agreement)|accelerat(?:e|ion) of (?:the\s+)?(?:indebtedness|obligations)|Item\s+2\.04\b`),
	extract.NewRule("going_concern", extract.KindFlag, `going concern`),
	extract.NewRule("material_weakness", extract.KindFlag, `material weakness(?:es)?`),
	extract.NewRule("restatement", extract.KindFlag,
		`restat(?:e|ed|ement of)\s+(?:its\s+|the\s+|our\s+)?(?:previously issued\s+)?(?:consolidated\s+)?financial statements|non-reliance on previously issued`),
	extract.NewRule("cybersecurity", extract.KindFlag,
		`cybersecurity incident|ransomware|unauthorized (?:access|third party)[^.]{0,60}?(?:systems|network|data)|Item\s+1\.05\b`),
}
