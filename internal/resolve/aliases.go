package resolve

// DefaultAliases returns the compiled-in alias table covering major clubs
// across the big European leagues. Keys must match registry canonical
// names exactly; an alias whose canonical club is absent from the
// registry is inert.
func DefaultAliases() AliasTable {
	return AliasTable{
		// England
		"Manchester United F.C.":   {"Man United", "Man Utd", "MUFC", "United"},
		"Manchester City F.C.":     {"Man City", "MCFC", "City"},
		"Arsenal F.C.":             {"Arsenal", "The Gunners"},
		"Chelsea F.C.":             {"Chelsea", "CFC"},
		"Liverpool F.C.":           {"Liverpool", "LFC"},
		"Tottenham Hotspur F.C.":   {"Spurs", "Tottenham"},
		"Newcastle United F.C.":    {"Newcastle", "NUFC"},
		"West Ham United F.C.":     {"West Ham", "The Hammers"},
		"Everton F.C.":             {"Everton"},
		"Leeds United F.C.":        {"Leeds", "Leeds United"},

		// Spain
		"Real Madrid CF":           {"Real Madrid", "Real"},
		"FC Barcelona":             {"Barcelona", "Barça", "Barca"},
		"Atlético de Madrid":       {"Atletico Madrid", "Atlético Madrid", "Atleti"},
		"Sevilla FC":               {"Sevilla"},
		"Valencia CF":              {"Valencia"},
		"Athletic Bilbao":          {"Athletic Club", "Bilbao"},

		// Italy
		"Juventus FC":              {"Juventus", "Juve"},
		"AC Milan":                 {"Milan", "Rossoneri"},
		"Inter Milan":              {"Inter", "Internazionale", "FC Internazionale Milano"},
		"AS Roma":                  {"Roma"},
		"SSC Napoli":               {"Napoli"},
		"SS Lazio":                 {"Lazio"},

		// Germany
		"FC Bayern Munich":         {"Bayern", "Bayern Munich", "Bayern München", "FCB"},
		"Borussia Dortmund":        {"Dortmund", "BVB"},
		"RB Leipzig":               {"Leipzig"},
		"Bayer 04 Leverkusen":      {"Leverkusen", "Bayer Leverkusen"},

		// France
		"Paris Saint-Germain F.C.": {"PSG", "Paris SG", "Paris Saint-Germain"},
		"Olympique de Marseille":   {"Marseille", "OM"},
		"Olympique Lyonnais":       {"Lyon", "OL"},
		"AS Monaco FC":             {"Monaco"},

		// Netherlands / Portugal / Scotland
		"AFC Ajax":                 {"Ajax", "Ajax Amsterdam"},
		"PSV Eindhoven":            {"PSV"},
		"SL Benfica":               {"Benfica"},
		"FC Porto":                 {"Porto"},
		"Sporting CP":              {"Sporting", "Sporting Lisbon"},
		"Celtic F.C.":              {"Celtic"},
		"Rangers F.C.":             {"Rangers", "Glasgow Rangers"},
	}
}
