package edgar

// --- EDGAR Submissions (data.sec.gov/submissions) ---

// Submissions is a company's submissions file: identity plus the most
// recent filings as parallel arrays.
type Submissions struct {
	CIK            string   `json:"cik"`
	Name           string   `json:"name"`
	Tickers        []string `json:"tickers"`
	Exchanges      []string `json:"exchanges"`
	SIC            string   `json:"sic"`
	SICDescription string   `json:"sicDescription"`
	StateOfInc     string   `json:"stateOfIncorporation"`
	FiscalYearEnd  string   `json:"fiscalYearEnd"`
	Filings        struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings holds one slice per column; index i across slices is one
// filing, newest first.
type RecentFilings struct {
	AccessionNumber       []string `json:"accessionNumber"`
	FilingDate            []string `json:"filingDate"`
	ReportDate            []string `json:"reportDate"`
	Form                  []string `json:"form"`
	PrimaryDocument       []string `json:"primaryDocument"`
	PrimaryDocDescription []string `json:"primaryDocDescription"`
	Items                 []string `json:"items"`
}

// Len is the number of filings listed.
func (r RecentFilings) Len() int { return len(r.AccessionNumber) }

// at returns s[i], or "" when a column is shorter than the accession list.
func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// --- Company tickers (www.sec.gov/files/company_tickers.json) ---

// tickerEntry is one value of the ticker map, keyed by row index.
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}
