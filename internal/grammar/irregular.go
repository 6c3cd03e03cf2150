package grammar

// Irregular conjugation tables, keyed by normalized infinitive. Person order
// is always io, tu, lui/lei, noi, voi, loro.

var irregularPresente = map[string][personCount]string{
	"essere":   {"sono", "sei", "è", "siamo", "siete", "sono"},
	"avere":    {"ho", "hai", "ha", "abbiamo", "avete", "hanno"},
	"andare":   {"vado", "vai", "va", "andiamo", "andate", "vanno"},
	"fare":     {"faccio", "fai", "fa", "facciamo", "fate", "fanno"},
	"stare":    {"sto", "stai", "sta", "stiamo", "state", "stanno"},
	"dare":     {"do", "dai", "dà", "diamo", "date", "danno"},
	"dire":     {"dico", "dici", "dice", "diciamo", "dite", "dicono"},
	"venire":   {"vengo", "vieni", "viene", "veniamo", "venite", "vengono"},
	"uscire":   {"esco", "esci", "esce", "usciamo", "uscite", "escono"},
	"bere":     {"bevo", "bevi", "beve", "beviamo", "bevete", "bevono"},
	"potere":   {"posso", "puoi", "può", "possiamo", "potete", "possono"},
	"volere":   {"voglio", "vuoi", "vuole", "vogliamo", "volete", "vogliono"},
	"dovere":   {"devo", "devi", "deve", "dobbiamo", "dovete", "devono"},
	"sapere":   {"so", "sai", "sa", "sappiamo", "sapete", "sanno"},
	"rimanere": {"rimango", "rimani", "rimane", "rimaniamo", "rimanete", "rimangono"},
	"salire":   {"salgo", "sali", "sale", "saliamo", "salite", "salgono"},
	"tenere":   {"tengo", "tieni", "tiene", "teniamo", "tenete", "tengono"},
	"scegliere": {"scelgo", "scegli", "sceglie", "scegliamo", "scegliete",
		"scelgono"},
}

var irregularImperfetto = map[string][personCount]string{
	"essere": {"ero", "eri", "era", "eravamo", "eravate", "erano"},
	"fare":   {"facevo", "facevi", "faceva", "facevamo", "facevate", "facevano"},
	"dire":   {"dicevo", "dicevi", "diceva", "dicevamo", "dicevate", "dicevano"},
	"bere":   {"bevevo", "bevevi", "beveva", "bevevamo", "bevevate", "bevevano"},
}

// irregularParticiple maps infinitives with irregular past participles.
var irregularParticiple = map[string]string{
	"essere":      "stato",
	"fare":        "fatto",
	"dire":        "detto",
	"bere":        "bevuto",
	"venire":      "venuto",
	"rimanere":    "rimasto",
	"scegliere":   "scelto",
	"leggere":     "letto",
	"scrivere":    "scritto",
	"aprire":      "aperto",
	"chiudere":    "chiuso",
	"prendere":    "preso",
	"mettere":     "messo",
	"vedere":      "visto",
	"vivere":      "vissuto",
	"perdere":     "perso",
	"vincere":     "vinto",
	"rispondere":  "risposto",
	"chiedere":    "chiesto",
	"rompere":     "rotto",
	"morire":      "morto",
	"nascere":     "nato",
	"correre":     "corso",
	"decidere":    "deciso",
	"ridere":      "riso",
	"succedere":   "successo",
	"raggiungere": "raggiunto",
	"coinvolgere": "coinvolto",
	"trascorrere": "trascorso",
}

// essereVerbs lists verbs that take essere as auxiliary even without an
// explicit catalog tag. Motion and change-of-state verbs, mostly.
var essereVerbs = map[string]bool{
	"essere":    true,
	"andare":    true,
	"venire":    true,
	"stare":     true,
	"uscire":    true,
	"rimanere":  true,
	"arrivare":  true,
	"partire":   true,
	"tornare":   true,
	"entrare":   true,
	"salire":    true,
	"scendere":  true,
	"cadere":    true,
	"nascere":   true,
	"morire":    true,
	"diventare": true,
	"succedere": true,
}
