// Company reference data for search and the reel feed.

package catalog

// reelCount is the number of leading suggestions that make up the reel
// catalog.
const reelCount = 30

// Suggestions is the full company list offered by search.
var Suggestions = []Entry{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "GOOGL", Name: "Alphabet"},
	{Symbol: "MSFT", Name: "Microsoft"},
	{Symbol: "TSLA", Name: "Tesla"},
	{Symbol: "AMZN", Name: "Amazon"},
	{Symbol: "META", Name: "Meta"},
	{Symbol: "NVDA", Name: "NVIDIA"},
	{Symbol: "NFLX", Name: "Netflix"},
	{Symbol: "JPM", Name: "JPMorgan Chase"},
	{Symbol: "BAC", Name: "Bank of America"},
	{Symbol: "V", Name: "Visa"},
	{Symbol: "MA", Name: "Mastercard"},
	{Symbol: "GS", Name: "Goldman Sachs"},
	{Symbol: "MS", Name: "Morgan Stanley"},
	{Symbol: "DIS", Name: "Walt Disney"},
	{Symbol: "WMT", Name: "Walmart"},
	{Symbol: "PEP", Name: "PepsiCo"},
	{Symbol: "KO", Name: "Coca-Cola"},
	{Symbol: "JNJ", Name: "Johnson & Johnson"},
	{Symbol: "PFE", Name: "Pfizer"},
	{Symbol: "XOM", Name: "Exxon Mobil"},
	{Symbol: "CSCO", Name: "Cisco Systems"},
	{Symbol: "C", Name: "Citigroup"},
	{Symbol: "WFC", Name: "Wells Fargo"},
	{Symbol: "CVX", Name: "Chevron"},
	{Symbol: "UNH", Name: "UnitedHealth Group"},
	{Symbol: "PG", Name: "Procter & Gamble"},
	{Symbol: "HD", Name: "Home Depot"},
	{Symbol: "ORCL", Name: "Oracle"},
	{Symbol: "ADBE", Name: "Adobe"},
	{Symbol: "CRM", Name: "Salesforce"},
	{Symbol: "INTC", Name: "Intel"},
	{Symbol: "COST", Name: "Costco"},
	{Symbol: "MCD", Name: "McDonald's"},
	{Symbol: "NKE", Name: "Nike"},
	{Symbol: "ABT", Name: "Abbott Laboratories"},
	{Symbol: "MRK", Name: "Merck & Co."},
	{Symbol: "T", Name: "AT&T"},
	{Symbol: "VZ", Name: "Verizon"},
	{Symbol: "LLY", Name: "Eli Lilly"},
	{Symbol: "ABBV", Name: "AbbVie"},
	{Symbol: "QCOM", Name: "Qualcomm"},
	{Symbol: "IBM", Name: "IBM"},
	{Symbol: "TXN", Name: "Texas Instruments"},
	{Symbol: "HON", Name: "Honeywell"},
	{Symbol: "BA", Name: "Boeing"},
	{Symbol: "GE", Name: "General Electric"},
	{Symbol: "CAT", Name: "Caterpillar"},
	{Symbol: "UPS", Name: "United Parcel Service"},
	{Symbol: "CVS", Name: "CVS Health"},
	{Symbol: "MDT", Name: "Medtronic"},
	{Symbol: "LOW", Name: "Lowe's"},
	{Symbol: "PM", Name: "Philip Morris International"},
	{Symbol: "SPGI", Name: "S&P Global"},
	{Symbol: "AXP", Name: "American Express"},
	{Symbol: "DE", Name: "Deere & Company"},
	{Symbol: "AMGN", Name: "Amgen"},
	{Symbol: "MDLZ", Name: "Mondelez International"},
	{Symbol: "PYPL", Name: "PayPal"},
	{Symbol: "SBUX", Name: "Starbucks"},
	{Symbol: "TGT", Name: "Target"},
	{Symbol: "GM", Name: "General Motors"},
	{Symbol: "F", Name: "Ford Motor"},
	{Symbol: "DAL", Name: "Delta Air Lines"},
	{Symbol: "LUV", Name: "Southwest Airlines"},
	{Symbol: "BLK", Name: "BlackRock"},
	{Symbol: "MMM", Name: "3M"},
	{Symbol: "MO", Name: "Altria Group"},
	{Symbol: "KHC", Name: "Kraft Heinz"},
	{Symbol: "GIS", Name: "General Mills"},
	{Symbol: "KMB", Name: "Kimberly-Clark"},
	{Symbol: "CL", Name: "Colgate-Palmolive"},
	{Symbol: "PLTR", Name: "Palantir Technologies"},
	{Symbol: "INTU", Name: "Intuit"},
	{Symbol: "NOW", Name: "ServiceNow"},
	{Symbol: "ADP", Name: "Automatic Data Processing"},
	{Symbol: "ISRG", Name: "Intuitive Surgical"},
	{Symbol: "BKNG", Name: "Booking Holdings"},
	{Symbol: "PGR", Name: "Progressive"},
	{Symbol: "LMT", Name: "Lockheed Martin"},
	{Symbol: "RTX", Name: "Raytheon Technologies"},
	{Symbol: "DUK", Name: "Duke Energy"},
	{Symbol: "SO", Name: "Southern Company"},
	{Symbol: "GMAB", Name: "Genmab"},
	{Symbol: "EL", Name: "Estée Lauder"},
	{Symbol: "SHW", Name: "Sherwin-Williams"},
	{Symbol: "TJX", Name: "TJX Companies"},
	{Symbol: "BK", Name: "Bank of New York Mellon"},
	{Symbol: "FDX", Name: "FedEx"},
	{Symbol: "MAR", Name: "Marriott International"},
	{Symbol: "CME", Name: "CME Group"},
	{Symbol: "TMO", Name: "Thermo Fisher Scientific"},
	{Symbol: "DHR", Name: "Danaher"},
	{Symbol: "EQIX", Name: "Equinix"},
	{Symbol: "CSX", Name: "CSX Corporation"},
	{Symbol: "NSC", Name: "Norfolk Southern"},
	{Symbol: "HUM", Name: "Humana"},
	{Symbol: "AON", Name: "Aon"},
	{Symbol: "MMC", Name: "Marsh & McLennan"},
	{Symbol: "CB", Name: "Chubb"},
	{Symbol: "ALL", Name: "Allstate"},
	{Symbol: "FCEL", Name: "FuelCell Energy"},
	{Symbol: "KLAC", Name: "KLA"},
	{Symbol: "FTNT", Name: "Fortinet"},
	{Symbol: "ALGN", Name: "Align Technology"},
	{Symbol: "EXC", Name: "Exelon"},
	{Symbol: "ABNB", Name: "Airbnb"},
	{Symbol: "PNC", Name: "PNC Financial Services Group"},
	{Symbol: "RBLX", Name: "Roblox"},
	{Symbol: "PANW", Name: "Palo Alto Networks"},
	{Symbol: "RCL", Name: "Royal Caribbean Group"},
	{Symbol: "FAST", Name: "Fastenal"},
	{Symbol: "KMI", Name: "Kinder Morgan"},
	{Symbol: "CTAS", Name: "Cintas"},
	{Symbol: "EIX", Name: "Edison International"},
	{Symbol: "HCA", Name: "HCA Healthcare"},
	{Symbol: "PTON", Name: "Peloton Interactive"},
	{Symbol: "NEE", Name: "NextEra Energy"},
	{Symbol: "MU", Name: "Micron Technology"},
	{Symbol: "VLO", Name: "Valero Energy"},
	{Symbol: "USB", Name: "U.S. Bancorp"},
	{Symbol: "HLT", Name: "Hilton Worldwide Holdings"},
	{Symbol: "LYFT", Name: "Lyft"},
	{Symbol: "EMR", Name: "Emerson Electric"},
	{Symbol: "IRM", Name: "Iron Mountain"},
	{Symbol: "AIG", Name: "American International Group"},
	{Symbol: "BMY", Name: "Bristol-Myers Squibb"},
	{Symbol: "EOG", Name: "EOG Resources"},
	{Symbol: "MCK", Name: "McKesson"},
	{Symbol: "ECL", Name: "Ecolab"},
	{Symbol: "WELL", Name: "Welltower"},
	{Symbol: "GILD", Name: "Gilead Sciences"},
	{Symbol: "VRTX", Name: "Vertex Pharmaceuticals"},
	{Symbol: "MNST", Name: "Monster Beverage"},
	{Symbol: "SPG", Name: "Simon Property Group"},
	{Symbol: "WDAY", Name: "Workday"},
	{Symbol: "ZM", Name: "Zoom Video Communications"},
	{Symbol: "BIIB", Name: "Biogen"},
	{Symbol: "NEM", Name: "Newmont"},
	{Symbol: "LHX", Name: "L3Harris Technologies"},
	{Symbol: "LIN", Name: "Linde"},
	{Symbol: "DTE", Name: "DTE Energy"},
	{Symbol: "VICI", Name: "VICI Properties"},
	{Symbol: "ITW", Name: "Illinois Tool Works"},
	{Symbol: "REGN", Name: "Regeneron Pharmaceuticals"},
	{Symbol: "AXON", Name: "Axon Enterprise"},
	{Symbol: "CDNS", Name: "Cadence Design Systems"},
	{Symbol: "ZTS", Name: "Zoetis"},
	{Symbol: "AMAT", Name: "Applied Materials"},
	{Symbol: "PLUG", Name: "Plug Power"},
	{Symbol: "FCX", Name: "Freeport-McMoRan"},
	{Symbol: "DLTR", Name: "Dollar Tree"},
	{Symbol: "ROKU", Name: "Roku"},
	{Symbol: "AEP", Name: "American Electric Power"},
	{Symbol: "TDG", Name: "TransDigm Group"},
	{Symbol: "ADI", Name: "Analog Devices"},
	{Symbol: "CEG", Name: "Constellation Energy"},
	{Symbol: "PSX", Name: "Phillips 66"},
	{Symbol: "BP", Name: "BP"},
	{Symbol: "SLB", Name: "Schlumberger"},
	{Symbol: "PH", Name: "Parker-Hannifin"},
	{Symbol: "WM", Name: "Waste Management"},
	{Symbol: "COIN", Name: "Coinbase Global"},
	{Symbol: "AOS", Name: "A. O. Smith"},
	{Symbol: "BABA", Name: "Alibaba Group"},
	{Symbol: "UBER", Name: "Uber Technologies"},
	{Symbol: "OXY", Name: "Occidental Petroleum"},
	{Symbol: "FHN", Name: "First Horizon"},
	{Symbol: "ENPH", Name: "Enphase Energy"},
	{Symbol: "APH", Name: "Amphenol"},
	{Symbol: "SYK", Name: "Stryker"},
	{Symbol: "BYND", Name: "Beyond Meat"},
	{Symbol: "BDX", Name: "Becton, Dickinson"},
	{Symbol: "PPL", Name: "PPL"},
	{Symbol: "ACN", Name: "Accenture"},
	{Symbol: "NOC", Name: "Northrop Grumman"},
	{Symbol: "COP", Name: "ConocoPhillips"},
	{Symbol: "DASH", Name: "DoorDash"},
	{Symbol: "KKR", Name: "KKR"},
	{Symbol: "ORLY", Name: "O'Reilly Automotive"},
	{Symbol: "MSI", Name: "Motorola Solutions"},
	{Symbol: "ETR", Name: "Entergy"},
	{Symbol: "HAL", Name: "Halliburton"},
	{Symbol: "UNP", Name: "Union Pacific"},
	{Symbol: "TT", Name: "Trane Technologies"},
	{Symbol: "HBAN", Name: "Huntington Bancshares"},
	{Symbol: "FSLR", Name: "First Solar"},
	{Symbol: "CRWD", Name: "CrowdStrike"},
	{Symbol: "MET", Name: "MetLife"},
	{Symbol: "SHOP", Name: "Shopify"},
	{Symbol: "DOCU", Name: "DocuSign"},
	{Symbol: "PSA", Name: "Public Storage"},
	{Symbol: "ADSK", Name: "Autodesk"},
	{Symbol: "CMI", Name: "Cummins"},
	{Symbol: "RSG", Name: "Republic Services"},
	{Symbol: "OKTA", Name: "Okta"},
	{Symbol: "ETN", Name: "Eaton"},
	{Symbol: "AMD", Name: "Advanced Micro Devices"},
	{Symbol: "MCO", Name: "Moody's"},
	{Symbol: "BKR", Name: "Baker Hughes"},
	{Symbol: "ICE", Name: "Intercontinental Exchange"},
	{Symbol: "AVGO", Name: "Broadcom"},
	{Symbol: "TXT", Name: "Textron"},
	{Symbol: "BX", Name: "Blackstone"},
	{Symbol: "APP", Name: "AppLovin"},
	{Symbol: "AFL", Name: "Aflac"},
	{Symbol: "PLD", Name: "Prologis"},
	{Symbol: "NXPI", Name: "NXP Semiconductors"},
	{Symbol: "SNPS", Name: "Synopsys"},
	{Symbol: "TRV", Name: "Travelers"},
	{Symbol: "LRCX", Name: "Lam Research"},
	{Symbol: "AZO", Name: "AutoZone"},
	{Symbol: "DXCM", Name: "DexCom"},
	{Symbol: "EQR", Name: "Equity Residential"},
	{Symbol: "ANET", Name: "Arista Networks"},
	{Symbol: "IP", Name: "International Paper"},
	{Symbol: "AMT", Name: "American Tower"},
	{Symbol: "MELI", Name: "MercadoLibre"},
	{Symbol: "COF", Name: "Capital One Financial"},
	{Symbol: "HWM", Name: "Howmet Aerospace"},
	{Symbol: "TEL", Name: "TE Connectivity"},
	{Symbol: "HOOD", Name: "Robinhood Markets"},
	{Symbol: "AJG", Name: "Arthur J. Gallagher"},
	{Symbol: "APD", Name: "Air Products and Chemicals"},
	{Symbol: "GD", Name: "General Dynamics"},
	{Symbol: "ESS", Name: "Essex Property Trust"},
	{Symbol: "SHEL", Name: "Shell"},
	{Symbol: "XYZ", Name: "Block"},
	{Symbol: "LI", Name: "Li Auto"},
	{Symbol: "ALLE", Name: "Allegion"},
	{Symbol: "XPEV", Name: "XPeng"},
	{Symbol: "TTD", Name: "The Trade Desk"},
	{Symbol: "ROK", Name: "Rockwell Automation"},
	{Symbol: "CMG", Name: "Chipotle Mexican Grill"},
	{Symbol: "CI", Name: "Cigna Group"},
	{Symbol: "DLR", Name: "Digital Realty Trust"},
	{Symbol: "MPC", Name: "Marathon Petroleum"},
	{Symbol: "SNAP", Name: "Snap"},
	{Symbol: "AVB", Name: "AvalonBay Communities"},
	{Symbol: "BSX", Name: "Boston Scientific"},
	{Symbol: "STX", Name: "Seagate Technology"},
	{Symbol: "CMA", Name: "Comerica"},
	{Symbol: "EXPE", Name: "Expedia Group"},
	{Symbol: "ELV", Name: "Elevance Health"},
	{Symbol: "SCHW", Name: "Charles Schwab"},
	{Symbol: "CMCSA", Name: "Comcast"},
	{Symbol: "GLW", Name: "Corning"},
	{Symbol: "DELL", Name: "Dell Technologies"},
	{Symbol: "TFC", Name: "Truist Financial"},
	{Symbol: "VST", Name: "Vistra"},
	{Symbol: "URI", Name: "United Rentals"},
	{Symbol: "GEV", Name: "GE Vernova"},
	{Symbol: "WMB", Name: "Williams Companies"},
	{Symbol: "TMUS", Name: "T-Mobile US"},
	{Symbol: "APO", Name: "Apollo Global Management"},
	{Symbol: "FI", Name: "Fiserv"},
	{Symbol: "PWR", Name: "Quanta Services"},
	{Symbol: "SRE", Name: "Sempra Energy"},
	{Symbol: "DDOG", Name: "Datadog"},
	{Symbol: "SMCI", Name: "Super Micro Computer"},
	{Symbol: "FICO", Name: "Fair Isaac"},
	{Symbol: "MPWR", Name: "Monolithic Power Systems"},
	{Symbol: "YUM", Name: "Yum! Brands"},
	{Symbol: "HSY", Name: "Hershey Company"},
	{Symbol: "CCL", Name: "Carnival"},
	{Symbol: "CHTR", Name: "Charter Communications"},
	{Symbol: "STT", Name: "State Street Corporation"},
	{Symbol: "MTB", Name: "M&T Bank"},
	{Symbol: "CTSH", Name: "Cognizant"},
}
