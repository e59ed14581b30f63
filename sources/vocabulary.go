package sources

// DefaultPopularTerms is the curated vocabulary of frequently searched
// administrative and legal terms.
var DefaultPopularTerms = []PopularTerm{
	{Text: "décret", Category: "texte réglementaire"},
	{Text: "décret d'application", Category: "texte réglementaire"},
	{Text: "décret-loi", Category: "texte réglementaire"},
	{Text: "arrêté", Category: "texte réglementaire"},
	{Text: "arrêté ministériel", Category: "texte réglementaire"},
	{Text: "arrêté préfectoral", Category: "texte réglementaire"},
	{Text: "arrêté municipal", Category: "texte réglementaire"},
	{Text: "règlement", Category: "texte réglementaire"},
	{Text: "règlement intérieur", Category: "texte réglementaire"},
	{Text: "circulaire", Category: "texte réglementaire"},
	{Text: "instruction", Category: "texte réglementaire"},
	{Text: "note de service", Category: "texte réglementaire"},
	{Text: "loi", Category: "texte législatif"},
	{Text: "loi organique", Category: "texte législatif"},
	{Text: "loi de finances", Category: "texte législatif"},
	{Text: "loi de finances rectificative", Category: "texte législatif"},
	{Text: "ordonnance", Category: "texte législatif"},
	{Text: "code civil", Category: "texte législatif"},
	{Text: "code pénal", Category: "texte législatif"},
	{Text: "code du travail", Category: "texte législatif"},
	{Text: "code général des impôts", Category: "texte législatif"},
	{Text: "constitution", Category: "texte législatif"},
	{Text: "jurisprudence", Category: "jurisprudence"},
	{Text: "arrêt du conseil d'état", Category: "jurisprudence"},
	{Text: "cour de cassation", Category: "jurisprudence"},
	{Text: "conseil constitutionnel", Category: "jurisprudence"},
	{Text: "ministère", Category: "institution"},
	{Text: "ministère de l'intérieur", Category: "institution"},
	{Text: "ministère de l'économie", Category: "institution"},
	{Text: "ministère de la justice", Category: "institution"},
	{Text: "préfecture", Category: "institution"},
	{Text: "collectivité territoriale", Category: "institution"},
	{Text: "budget", Category: "finances"},
	{Text: "budget annexe", Category: "finances"},
	{Text: "budget primitif", Category: "finances"},
	{Text: "dotation", Category: "finances"},
	{Text: "subvention", Category: "finances"},
	{Text: "marché public", Category: "commande publique"},
	{Text: "appel d'offres", Category: "commande publique"},
	{Text: "cahier des charges", Category: "commande publique"},
	{Text: "convention", Category: "contrat"},
	{Text: "contrat", Category: "contrat"},
	{Text: "avenant", Category: "contrat"},
	{Text: "délibération", Category: "acte local"},
	{Text: "procès-verbal", Category: "acte local"},
	{Text: "rapport annuel", Category: "rapport"},
	{Text: "rapport d'activité", Category: "rapport"},
	{Text: "journal officiel", Category: "publication"},
	{Text: "bulletin officiel", Category: "publication"},
}

// DefaultContextRules relate query stems to phrases commonly searched
// alongside them.
var DefaultContextRules = []ContextRule{
	{
		Pattern: `^(budg|financ|dotat)`,
		Phrases: []string{"budget de l'état", "budget annexe", "budget rectificatif", "finances publiques", "finances locales", "dotation globale de fonctionnement"},
		Note:    "finances publiques",
	},
	{
		Pattern: `^(déc|dec)r`,
		Phrases: []string{"décret en conseil d'état", "décret simple", "décret d'application", "décret de nomination"},
		Note:    "actes réglementaires",
	},
	{
		Pattern: `^arr[eê]`,
		Phrases: []string{"arrêté ministériel", "arrêté interministériel", "arrêté préfectoral", "arrêté de nomination"},
		Note:    "actes réglementaires",
	},
	{
		Pattern: `^loi`,
		Phrases: []string{"loi de finances", "loi organique", "loi de programmation", "projet de loi", "proposition de loi"},
		Note:    "textes législatifs",
	},
	{
		Pattern: `^(march|appel|achat)`,
		Phrases: []string{"marché public", "marché à procédure adaptée", "appel d'offres ouvert", "appel d'offres restreint", "achat public"},
		Note:    "commande publique",
	},
	{
		Pattern: `^(rh|recrut|agent|fonction)`,
		Phrases: []string{"recrutement contractuel", "agent titulaire", "fonction publique territoriale", "fonction publique d'état"},
		Note:    "ressources humaines",
	},
}

// DefaultCorrections lists common misspellings, mostly missing accents and
// doubled consonants.
var DefaultCorrections = []Correction{
	{Misspelling: "decret", Correct: "décret"},
	{Misspelling: "arrete", Correct: "arrêté"},
	{Misspelling: "reglement", Correct: "règlement"},
	{Misspelling: "ministere", Correct: "ministère"},
	{Misspelling: "prefecture", Correct: "préfecture"},
	{Misspelling: "deliberation", Correct: "délibération"},
	{Misspelling: "procedure", Correct: "procédure"},
	{Misspelling: "budjet", Correct: "budget"},
	{Misspelling: "finnance", Correct: "finance"},
	{Misspelling: "jurisprudance", Correct: "jurisprudence"},
	{Misspelling: "ordonance", Correct: "ordonnance"},
	{Misspelling: "comission", Correct: "commission"},
	{Misspelling: "convension", Correct: "convention"},
	{Misspelling: "subvension", Correct: "subvention"},
	{Misspelling: "adminstration", Correct: "administration"},
	{Misspelling: "legislatif", Correct: "législatif"},
}
