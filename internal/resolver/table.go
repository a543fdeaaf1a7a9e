package resolver

// DefaultTable maps scoreboard SEO slugs to seeded team abbreviations
var DefaultTable = map[string]string{
	// SEC
	"alabama":        "ALA",
	"arkansas":       "ARK",
	"auburn":         "AUB",
	"florida":        "FLA",
	"georgia":        "UGA",
	"kentucky":       "UK",
	"lsu":            "LSU",
	"mississippi-st": "MSST",
	"missouri":       "MIZ",
	"oklahoma":       "OU",
	"ole-miss":       "MISS",
	"south-carolina": "SC",
	"tennessee":      "TENN",
	"texas":          "TEX",
	"texas-am":       "TAMU",
	"vanderbilt":     "VAN",

	// Big Ten
	"illinois":     "ILL",
	"indiana":      "IND",
	"iowa":         "IOWA",
	"maryland":     "MD",
	"michigan":     "MICH",
	"michigan-st":  "MSU",
	"minnesota":    "MINN",
	"nebraska":     "NEB",
	"northwestern": "NW",
	"ohio-st":      "OSU",
	"oregon":       "ORE",
	"penn-st":      "PSU",
	"purdue":       "PUR",
	"rutgers":      "RUT",
	"ucla":         "UCLA",
	"usc":          "USC",
	"washington":   "WASH",
	"wisconsin":    "WIS",

	// Big 12
	"arizona":       "ARIZ",
	"arizona-st":    "ASU",
	"baylor":        "BAY",
	"byu":           "BYU",
	"cincinnati":    "CIN",
	"colorado":      "COLO",
	"houston":       "HOU",
	"iowa-st":       "ISU",
	"kansas":        "KU",
	"kansas-st":     "KSU",
	"oklahoma-st":   "OKST",
	"tcu":           "TCU",
	"texas-tech":    "TTU",
	"ucf":           "UCF",
	"utah":          "UTAH",
	"west-virginia": "WVU",

	// ACC
	"boston-college": "BC",
	"california":     "CAL",
	"clemson":        "CLEM",
	"duke":           "DUKE",
	"florida-st":     "FSU",
	"georgia-tech":   "GT",
	"louisville":     "LOU",
	"miami-fl":       "MIA",
	"nc-state":       "NCST",
	"north-carolina": "UNC",
	"notre-dame":     "ND",
	"pittsburgh":     "PITT",
	"smu":            "SMU",
	"stanford":       "STAN",
	"syracuse":       "SYR",
	"virginia":       "UVA",
	"virginia-tech":  "VT",
	"wake-forest":    "WAKE",

	// Big East
	"butler":     "BUT",
	"uconn":      "CONN",
	"creighton":  "CREI",
	"depaul":     "DEP",
	"georgetown": "GTWN",
	"marquette":  "MARQ",
	"providence": "PROV",
	"st-johns":   "SJU",
	"seton-hall": "HALL",
	"villanova":  "NOVA",
	"xavier":     "XAV",

	// WCC
	"gonzaga":        "GONZ",
	"saint-marys-ca": "SMC",
	"pepperdine":     "PEPP",
}
