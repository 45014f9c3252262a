package symptom

// DefaultDictionary returns the built-in symptom reference set. Specific
// compound symptoms come before the general symptoms they contain, because
// matching takes the first entry that fits.
func DefaultDictionary() *Dictionary {
	return NewDictionary([]Entry{
		{ID: "s001", Name: "barking cough", Synonyms: []string{"seal-like cough", "croupy cough", "bellender husten"}},
		{ID: "s002", Name: "infant cough", Synonyms: []string{"baby cough", "säuglingshusten"}},
		{ID: "s003", Name: "sputum", Synonyms: []string{"productive cough", "expectoration", "auswurf"}},
		{ID: "s004", Name: "severe headache", Synonyms: []string{"worst headache", "thunderclap headache", "starke kopfschmerzen"}},
		{ID: "s005", Name: "chest pain", Synonyms: []string{"chest pressure", "chest tightness", "thoracic pain", "brustschmerzen"}},
		{ID: "s006", Name: "radiation to arm", Synonyms: []string{"radiating to left arm", "arm radiation", "ausstrahlung in den arm"}},
		{ID: "s007", Name: "shortness of breath", Synonyms: []string{"dyspnea", "breathlessness", "difficulty breathing", "atemnot", "kurzatmigkeit"}},
		{ID: "s008", Name: "wheezing", Synonyms: []string{"whistling breath", "pfeifen beim atmen"}},
		{ID: "s009", Name: "hoarseness", Synonyms: []string{"hoarse voice", "heiserkeit"}},
		{ID: "s010", Name: "runny nose", Synonyms: []string{"rhinorrhea", "nasal congestion", "schnupfen"}},
		{ID: "s011", Name: "sore throat", Synonyms: []string{"throat pain", "halsschmerzen"}},
		{ID: "s012", Name: "difficulty swallowing", Synonyms: []string{"dysphagia", "painful swallowing", "schluckbeschwerden"}},
		{ID: "s013", Name: "drooling", Synonyms: []string{"excessive salivation", "speichelfluss"}},
		{ID: "s014", Name: "earache", Synonyms: []string{"ear pain", "ohrenschmerzen"}},
		{ID: "s015", Name: "fever", Synonyms: []string{"high temperature", "febrile", "pyrexia", "fieber"}},
		{ID: "s016", Name: "cough", Synonyms: []string{"coughing", "husten"}},
		{ID: "s017", Name: "headache", Synonyms: []string{"head pain", "cephalgia", "kopfschmerzen"}},
		{ID: "s018", Name: "photophobia", Synonyms: []string{"light sensitivity", "lichtempfindlichkeit"}},
		{ID: "s019", Name: "neck stiffness", Synonyms: []string{"stiff neck", "nuchal rigidity", "nackensteifigkeit", "nackenstarre"}},
		{ID: "s020", Name: "nausea", Synonyms: []string{"queasiness", "übelkeit", "uebelkeit"}},
		{ID: "s021", Name: "vomiting", Synonyms: []string{"emesis", "throwing up", "erbrechen"}},
		{ID: "s022", Name: "diarrhea", Synonyms: []string{"loose stools", "durchfall"}},
		{ID: "s023", Name: "right-sided abdominal pain", Synonyms: []string{"right lower quadrant pain", "right-sided pain", "rechtsseitige bauchschmerzen"}},
		{ID: "s024", Name: "abdominal pain", Synonyms: []string{"belly ache", "stomach pain", "bauchschmerzen"}},
		{ID: "s025", Name: "loss of appetite", Synonyms: []string{"poor appetite", "anorexia", "appetitlosigkeit"}},
		{ID: "s026", Name: "fatigue", Synonyms: []string{"tiredness", "exhaustion", "müdigkeit", "muedigkeit"}},
		{ID: "s027", Name: "dizziness", Synonyms: []string{"vertigo", "lightheadedness", "schwindel"}},
		{ID: "s028", Name: "palpitations", Synonyms: []string{"racing heart", "herzrasen"}},
		{ID: "s029", Name: "sweating", Synonyms: []string{"diaphoresis", "cold sweat", "schwitzen", "schweißausbrüche"}},
		{ID: "s030", Name: "paralysis", Synonyms: []string{"one-sided weakness", "hemiparesis", "lähmung", "lähmungserscheinungen"}},
		{ID: "s031", Name: "speech disturbance", Synonyms: []string{"slurred speech", "aphasia", "sprachstörung", "sprachstörungen"}},
		{ID: "s032", Name: "unconsciousness", Synonyms: []string{"loss of consciousness", "fainting", "syncope", "bewusstlosigkeit"}},
		{ID: "s033", Name: "rash", Synonyms: []string{"skin eruption", "hives", "wheals", "hautausschlag", "quaddeln"}},
		{ID: "s034", Name: "itching", Synonyms: []string{"pruritus", "juckreiz"}},
		{ID: "s035", Name: "dysuria", Synonyms: []string{"burning urination", "painful urination", "brennen beim wasserlassen"}},
		{ID: "s036", Name: "urinary frequency", Synonyms: []string{"frequent urination", "pollakiuria", "pollakisurie"}},
		{ID: "s037", Name: "flank pain", Synonyms: []string{"loin pain", "flankenschmerz"}},
		{ID: "s038", Name: "thirst", Synonyms: []string{"polydipsia", "durst"}},
		{ID: "s039", Name: "polyuria", Synonyms: []string{"excessive urination", "polyurie"}},
		{ID: "s040", Name: "leg swelling", Synonyms: []string{"ankle edema", "beinschwellung"}},
		{ID: "s041", Name: "orthopnea", Synonyms: []string{"breathless lying flat", "orthopnoe"}},
		{ID: "s042", Name: "crying", Synonyms: []string{"inconsolable crying", "weinen"}},
		{ID: "s043", Name: "chills", Synonyms: []string{"shivering", "rigors", "schüttelfrost"}},
		{ID: "s044", Name: "back pain", Synonyms: []string{"lumbago", "rückenschmerzen"}},
		{ID: "s045", Name: "stridor", Synonyms: []string{"noisy breathing", "inspiratory stridor"}},
	})
}
