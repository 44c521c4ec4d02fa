package pipeline

// Heuristics holds the keyword tables driving filtering and scoring.
// The tables are injected at construction time so tests and deployments
// can run with alternate sets.
type Heuristics struct {
	// Institutional terms establish relevance; counted for the density gate
	// and the +inst score signal.
	Institutional []string

	// Noise terms mark meme/retail phrasing; counted for the density gate
	// and the -noise score signal.
	Noise []string

	// HighImpact terms are market-moving release/event names (+impact).
	HighImpact []string

	// Wire phrases indicate wire-service sourcing conventions (+wire).
	Wire []string

	// Clickbait phrases (-clickbait).
	Clickbait []string

	// ModalWeak words hedge a headline (-modal).
	ModalWeak []string

	// HardBlock terms drop an item unconditionally before scoring.
	HardBlock []string

	// Whitelist and Blacklist are matched as substrings of the link domain.
	Whitelist []string
	Blacklist []string
}

// DefaultHeuristics returns the hand-tuned institutional-finance tables.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Institutional: []string{
			"fomc", "fed", "federal reserve", "powell", "minutes", "dot plot",
			"forward guidance", "terminal rate", "rate path", "restrictive", "accommodative",
			"balance sheet", "runoff", "qt", "qe", "ecb", "boj", "boe",
			"cpi", "ppi", "pce", "core pce", "inflation", "jobs report", "nonfarm payrolls", "nfp",
			"jobless claims", "unemployment", "gdp", "retail sales", "ism", "pmi",
			"treasury", "auction", "bid-to-cover", "bid to cover", "tail",
			"2-year", "2 year", "10-year", "10 year", "real yield", "real yields",
			"yields", "yield curve", "term premium", "curve steepening", "curve flattening",
			"rebalancing", "asset allocation", "positioning", "cta", "risk parity",
			"etf inflows", "etf outflows", "creations", "redemptions",
			"options", "open interest", "gamma", "gamma exposure", "negative gamma", "positive gamma",
			"dealer hedging", "delta hedging", "0dte", "implied volatility", "skew", "vix",
			"liquidity", "funding stress", "financial conditions", "repo", "sofr", "stress",
		},
		Noise: []string{
			"meme", "viral", "to the moon", "diamond hands", "paper hands",
			"influencer", "hype", "ape",
			"rockets", "soars", "surges", "plunges",
		},
		HighImpact: []string{
			"cpi", "core cpi", "ppi", "pce", "core pce",
			"nonfarm payrolls", "nfp", "jobless claims", "unemployment rate",
			"fomc", "fed minutes", "dot plot", "powell",
			"auction", "refunding", "bid-to-cover", "tail",
			"2-year", "10-year", "real yield", "sofr", "repo", "qt",
			"vix", "0dte", "gamma", "dealer hedging", "skew",
		},
		Wire: []string{
			"said in a statement", "in a statement",
			"according to people familiar", "people familiar with the matter",
			"sources said", "data showed", "figures showed",
			"markets repriced", "investors reassessed",
			"traders priced in", "priced in",
		},
		Clickbait: []string{
			"what you need to know", "explained", "here's why", "here is why",
			"everything you need to know", "you won't believe",
			"price prediction", "forecast", "top picks", "buy now",
		},
		ModalWeak: []string{
			"could", "might", "may", "likely", "unlikely",
			"expected", "expected to", "set to", "poised to", "seen as",
		},
		HardBlock: []string{
			"quarterback", "broncos", "giants", "nfl", "nba", "mlb", "nhl", "soccer", "football",
			"rebooking", "flight", "flights", "airline", "visa",
			"brain", "learning", "health", "fitness",
		},
		Whitelist: []string{
			"reuters.com", "bloomberg.com", "ft.com", "wsj.com",
			"federalreserve.gov", "treasury.gov", "bls.gov", "bea.gov",
			"cnbc.com", "marketwatch.com", "barrons.com",
		},
		Blacklist: []string{
			"prnewswire.com", "businesswire.com", "globenewswire.com",
			"accesswire.com", "newsfilecorp.com",
			"seekingalpha.com", "themotleyfool.com", "investorplace.com",
		},
	}
}
