package config

// Default funnel tables. Viper's SetDefault does not merge nested maps cleanly,
// so map-valued pipeline settings fall back to these when the config file
// leaves them empty.

var defaultStages = []string{
	"Recruiter Screen",
	"HM Screen",
	"Testing",
	"Onsite",
	"Offer",
	"Hired",
}

var defaultStageAliases = map[string]string{
	// Lead stages feed the top of the funnel
	"New Lead":           "Recruiter Screen",
	"Reached Out":        "Recruiter Screen",
	"Replied":            "Recruiter Screen",
	"Application Review": "Recruiter Screen",
	"Recruiter Screen":   "Recruiter Screen",

	"Hiring Manager Screen": "HM Screen",
	"HM Screen":             "HM Screen",

	"Testing":              "Testing",
	"Technical Assessment": "Testing",
	"Take Home":            "Testing",

	"Onsite":          "Onsite",
	"Onsite Loop":     "Onsite",
	"Final Interview": "Onsite",

	"Offer":          "Offer",
	"Offer Extended": "Offer",

	"Hired":    "Hired",
	"Accepted": "Hired",
}

// Days a candidate may sit in a stage before counting as stuck. Hired has no
// threshold on purpose: a hired candidate cannot be stuck.
var defaultStuckThresholds = map[string]int{
	"Recruiter Screen": 5,
	"HM Screen":        7,
	"Testing":          10,
	"Onsite":           5,
	"Offer":            3,
}

var defaultActiveRoles = []string{
	"Senior Full Stack Engineer",
	"Senior AI Engineer",
	"GTM Engineer",
}

var defaultRolePriorities = map[string]int{
	"Senior Full Stack Engineer": 1,
	"Senior AI Engineer":         2,
	"GTM Engineer":               3,
}

// Benchmark conversion rates per role. These override observed rates so that
// gap-to-hire reflects targets instead of noisy small samples.
var defaultHistoricalRates = map[string]map[string]float64{
	"Senior Full Stack Engineer": {
		"Recruiter Screen→HM Screen": 0.33,
		"HM Screen→Testing":          0.65,
		"Testing→Onsite":             0.65,
		"Onsite→Offer":               0.30,
		"Offer→Hired":                0.80,
	},
	"Senior AI Engineer": {
		"Recruiter Screen→HM Screen": 0.33,
		"HM Screen→Testing":          0.65,
		"Testing→Onsite":             0.65,
		"Onsite→Offer":               0.30,
		"Offer→Hired":                0.80,
	},
	"GTM Engineer": {
		"Recruiter Screen→HM Screen": 0.40,
		"HM Screen→Testing":          0.65,
		"Testing→Onsite":             0.65,
		"Onsite→Offer":               0.37,
		"Offer→Hired":                0.80,
	},
}

var defaultSenderFloors = map[string]int{
	"Blessing": 80,
}

var defaultRoleCategories = map[string]string{
	"Senior Full Stack Engineer": "Full Stack",
	"Senior AI Engineer":         "AI Engineer",
}

var defaultSequenceRoles = map[string]string{
	"Fonzi - Sr. Full Stack Engineer - Drew":                       "Full Stack",
	"Fonzi - Fullstack Engineer - Blessing":                        "Full Stack",
	"Fonzi - Fullstack Engineer - V3":                              "Full Stack",
	"Fonzi - Sr. Full Stack Engineer - Blessing (as Drew)":         "Full Stack",
	"Fonzi - Sr. Full Stack Engineer - Drew (via Cait)":            "Full Stack",
	"Fonzi - Sr. Full Stack Engineer - Drew (via Rachel)":          "Full Stack",
	"Fonzi - Sr. Full Stack Engineer - Drew/Yang (via Cait)":       "Full Stack",
	"Fonzi - Fullstack Engineer - V4 short (as Drew)":              "Full Stack",
	"A/B - Fonzi - Fullstack Engineer - Blessing":                  "Full Stack",
	"Fonzi - Sr. AI Engineer - Drew":                               "AI Engineer",
	"Fonzi - Sr. AI Engineer - Blessing (as Drew)":                 "AI Engineer",
	"Fonzi - Sr. AI Engineer - Drew (SOBO via Rachel)":             "AI Engineer",
	"Fonzi - Sr. AI Engineer V2 w/Yang - Drew (SOBO via Rachel)":   "AI Engineer",
}

var defaultSequenceSenders = map[string]string{
	"Fonzi - Sr. Full Stack Engineer - Drew":                       "Drew",
	"Fonzi - Fullstack Engineer - Blessing":                        "Blessing",
	"Fonzi - Fullstack Engineer - V3":                              "Blessing",
	"Fonzi - Sr. Full Stack Engineer - Blessing (as Drew)":         "Blessing",
	"Fonzi - Sr. Full Stack Engineer - Drew (via Cait)":            "Drew",
	"Fonzi - Sr. Full Stack Engineer - Drew (via Rachel)":          "Drew",
	"Fonzi - Sr. Full Stack Engineer - Drew/Yang (via Cait)":       "Drew",
	"Fonzi - Fullstack Engineer - V4 short (as Drew)":              "Blessing",
	"A/B - Fonzi - Fullstack Engineer - Blessing":                  "Blessing",
	"Fonzi - Sr. AI Engineer - Drew":                               "Drew",
	"Fonzi - Sr. AI Engineer - Blessing (as Drew)":                 "Blessing",
	"Fonzi - Sr. AI Engineer - Drew (SOBO via Rachel)":             "Drew",
	"Fonzi - Sr. AI Engineer V2 w/Yang - Drew (SOBO via Rachel)":   "Drew",
}

func applyPipelineDefaults(p *PipelineConfig) {
	if len(p.Stages) == 0 {
		p.Stages = defaultStages
	}
	if len(p.StageAliases) == 0 {
		p.StageAliases = defaultStageAliases
	}
	if len(p.StuckThresholds) == 0 {
		p.StuckThresholds = defaultStuckThresholds
	}
	if len(p.ActiveRoles) == 0 {
		p.ActiveRoles = defaultActiveRoles
	}
	if len(p.RolePriorities) == 0 {
		p.RolePriorities = defaultRolePriorities
	}
	if len(p.HistoricalRates) == 0 {
		p.HistoricalRates = defaultHistoricalRates
	}
	if len(p.SenderFloors) == 0 {
		p.SenderFloors = defaultSenderFloors
	}
	if len(p.RoleCategories) == 0 {
		p.RoleCategories = defaultRoleCategories
	}
	if len(p.SequenceRoles) == 0 {
		p.SequenceRoles = defaultSequenceRoles
	}
	if len(p.SequenceSenders) == 0 {
		p.SequenceSenders = defaultSequenceSenders
	}
}
