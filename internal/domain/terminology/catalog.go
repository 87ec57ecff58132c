package terminology

// ReferenceCatalog returns the built-in seed catalog of NAMASTE to ICD-11
// mappings. It backs the in-memory repository and the `catalog seed`
// command; production deployments load a full catalog from Postgres.
func ReferenceCatalog() []Record {
	return []Record{
		{
			Code:           "A01",
			DisplayEnglish: "Fever",
			DisplayLocal:   "Jwara (ज्वर)",
			System:         SystemAyurveda,
			Synonyms: []SynonymGroup{
				{Language: "Sanskrit", Terms: []string{"Jwara", "तापजन्य", "शरीरोष्णता"}},
				{Language: "English", Terms: []string{"Pyrexia", "Hyperthermia"}},
			},
			MappedCode:    "MG50",
			MappedDisplay: "Fever, unspecified",
			Description:   "Elevated body temperature due to dosha imbalance",
			Confidence:    0.98,
			UsageCount:    2500,
		},
		{
			Code:           "A02",
			DisplayEnglish: "Digestive disorder",
			DisplayLocal:   "Agnimandya (अग्निमांद्य)",
			System:         SystemAyurveda,
			Synonyms: []SynonymGroup{
				{Language: "Sanskrit", Terms: []string{"Agnimandya", "पाचकाग्निमांद्य", "जठराग्निमांद्य"}},
				{Language: "English", Terms: []string{"Dyspepsia", "Indigestion"}},
			},
			MappedCode:    "DA93",
			MappedDisplay: "Dyspepsia",
			Description:   "Impaired digestive fire leading to poor digestion",
			Confidence:    0.95,
			UsageCount:    1800,
		},
		{
			Code:           "A03",
			DisplayEnglish: "Joint pain",
			DisplayLocal:   "Sandhivata (संधिवात)",
			System:         SystemAyurveda,
			Synonyms: []SynonymGroup{
				{Language: "Sanskrit", Terms: []string{"Sandhivata", "संधिशूल", "आमवात"}},
				{Language: "English", Terms: []string{"Arthritis", "Joint inflammation"}},
			},
			MappedCode:    "FA01",
			MappedDisplay: "Osteoarthritis of knee",
			Description:   "Vata dosha affecting joint spaces causing pain and stiffness",
			Confidence:    0.92,
			UsageCount:    3200,
		},
		{
			Code:           "S01",
			DisplayEnglish: "Skin inflammation",
			DisplayLocal:   "Tvak roga (त्वक् रोग)",
			System:         SystemSiddha,
			Synonyms: []SynonymGroup{
				{Language: "Tamil", Terms: []string{"Thoṟ pormai", "Noy thoṟ"}},
				{Language: "English", Terms: []string{"Dermatitis", "Eczema"}},
			},
			MappedCode:    "EA85",
			MappedDisplay: "Atopic dermatitis",
			Description:   "Skin disorder affecting the outer layer",
			Confidence:    0.89,
			UsageCount:    1200,
		},
		{
			Code:           "U01",
			DisplayEnglish: "Respiratory disorder",
			DisplayLocal:   "Nazla Zukam (نزلہ زکام)",
			System:         SystemUnani,
			Synonyms: []SynonymGroup{
				{Language: "Arabic", Terms: []string{"Nazla", "Zukam", "Bard"}},
				{Language: "English", Terms: []string{"Common cold", "Upper respiratory infection"}},
			},
			MappedCode:    "CA07",
			MappedDisplay: "Common cold",
			Description:   "Cold and moist temperament affecting respiratory system",
			Confidence:    0.94,
			UsageCount:    2100,
		},
		{
			Code:           "A04",
			DisplayEnglish: "Headache",
			DisplayLocal:   "Shirahshula (शिरःशूल)",
			System:         SystemAyurveda,
			Synonyms: []SynonymGroup{
				{Language: "Sanskrit", Terms: []string{"Shirahshula", "मस्तकशूल", "कपालशूल"}},
				{Language: "English", Terms: []string{"Cephalgia", "Head pain"}},
			},
			MappedCode:    "8A80",
			MappedDisplay: "Headache",
			Description:   "Pain in the head region due to vata aggravation",
			Confidence:    0.97,
			UsageCount:    2800,
		},
		{
			Code:           "A05",
			DisplayEnglish: "Diabetes",
			DisplayLocal:   "Prameha (प्रमेह)",
			System:         SystemAyurveda,
			Synonyms: []SynonymGroup{
				{Language: "Sanskrit", Terms: []string{"Prameha", "मधुमेह", "बहुमूत्र"}},
				{Language: "English", Terms: []string{"Diabetes mellitus", "Hyperglycemia"}},
			},
			MappedCode:    "5A11",
			MappedDisplay: "Type 2 diabetes mellitus",
			Description:   "Metabolic disorder characterized by excessive urination and sweet urine",
			Confidence:    0.99,
			UsageCount:    4500,
		},
	}
}
