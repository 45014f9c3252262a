package triage

// treatments maps a diagnosis to its recommended immediate management.
// Used when the language model did not supply a treatment.
var treatments = map[string]string{
	"Acute Myocardial Infarction": "Immediate emergency admission, ECG, troponin, dual antiplatelet therapy",
	"Acute Coronary Syndrome":     "Emergency admission, serial ECG and troponin, antiplatelet therapy",
	"Angina Pectoris":             "Resting ECG, nitroglycerin, cardiology referral",
	"Pulmonary Embolism":          "Emergency admission, D-dimer and CT angiography, anticoagulation",
	"Heart Failure":               "Diuretics, oxygen as needed, echocardiography",
	"Valvular Heart Disease":      "Echocardiography and cardiology referral",
	"Stroke":                      "Immediate stroke unit admission, cranial CT, thrombolysis evaluation",
	"Transient Ischemic Attack":   "Urgent neurology workup, antiplatelet therapy",
	"Subarachnoid Hemorrhage":     "Emergency admission, cranial CT, neurosurgical consult",
	"Meningitis":                  "Emergency admission, lumbar puncture, empiric IV antibiotics",
	"Migraine":                    "Analgesia, triptan therapy, quiet darkened room",
	"Epilepsy":                    "Neurology referral, EEG, seizure precautions",
	"Syncope":                     "ECG, orthostatic testing, cardiac monitoring",
	"Hypoglycemia":                "Immediate glucose administration, review of diabetes medication",
	"Pneumonia":                   "Antibiotic therapy, oxygen as needed, chest radiograph",
	"Pediatric Pneumonia":         "Pediatric admission evaluation, antibiotics, oxygen monitoring",
	"Bronchitis":                  "Symptomatic therapy, fluids, rest",
	"Influenza":                   "Symptomatic therapy, fluids, antipyretics, isolation",
	"Asthma Attack":               "Inhaled bronchodilators, corticosteroids, oxygen",
	"Asthma Exacerbation":         "Step-up inhaled therapy, short course of oral corticosteroids",
	"COPD Exacerbation":           "Bronchodilators, corticosteroids, controlled oxygen",
	"Croup":                       "Cool humidified air, corticosteroids, calm environment",
	"RSV Bronchiolitis":           "Supportive care, nasal suctioning, oxygen monitoring",
	"Bronchiolitis":               "Supportive care, hydration, oxygen monitoring",
	"Epiglottitis":                "Emergency airway management, do not examine the throat",
	"Acute Otitis Media":          "Analgesia, ENT follow-up, antibiotics if persistent",
	"Appendicitis":                "Surgical consult, keep fasting, IV fluids",
	"Gastroenteritis":             "Oral rehydration, antiemetics as needed",
	"Urinary Tract Infection":     "Oral antibiotics, increased fluid intake",
	"Cystitis":                    "Oral antibiotics, increased fluid intake",
	"Urethritis":                  "Urology referral, targeted antibiotics",
	"Pyelonephritis":              "Admission evaluation, IV antibiotics, urine culture",
	"Bacterial Infection":         "Identify focus, targeted antibiotic therapy",
	"Viral Infection":             "Symptomatic therapy, fluids, rest",
	"Decompensated Diabetes":      "Blood glucose correction, fluids, diabetology referral",
	"Anaphylactic Reaction":       "Intramuscular epinephrine, emergency admission",
	"Food Allergy":                "Allergen avoidance, antihistamines, allergy testing",
	"Allergic Reaction":           "Antihistamines, observation for progression",
	"Urticaria":                   "Antihistamines, trigger avoidance",
	"Angioedema":                  "Antihistamines and corticosteroids, airway observation",
	"Aortic Dissection":           "Emergency admission, CT angiography, blood pressure control",
}

const defaultTreatment = "Consult a specialist"

// billingCodes maps a diagnosis to its ICD-10 code. Used when the
// language model did not supply a code.
var billingCodes = map[string]string{
	"Acute Myocardial Infarction": "I21.9",
	"Acute Coronary Syndrome":     "I24.9",
	"Angina Pectoris":             "I20.9",
	"Pulmonary Embolism":          "I26.9",
	"Heart Failure":               "I50.9",
	"Valvular Heart Disease":      "I38",
	"Stroke":                      "I63.9",
	"Transient Ischemic Attack":   "G45.9",
	"Subarachnoid Hemorrhage":     "I60.9",
	"Meningitis":                  "G03.9",
	"Migraine":                    "G43.9",
	"Epilepsy":                    "G40.9",
	"Syncope":                     "R55",
	"Hypoglycemia":                "E16.2",
	"Pneumonia":                   "J18.9",
	"Pediatric Pneumonia":         "J18.9",
	"Bronchitis":                  "J40",
	"Influenza":                   "J11.1",
	"Asthma Attack":               "J45.9",
	"Asthma Exacerbation":         "J45.9",
	"COPD Exacerbation":           "J44.1",
	"Croup":                       "J05.0",
	"RSV Bronchiolitis":           "J21.0",
	"Bronchiolitis":               "J21.9",
	"Epiglottitis":                "J05.1",
	"Acute Otitis Media":          "H66.9",
	"Appendicitis":                "K35.8",
	"Gastroenteritis":             "A09",
	"Urinary Tract Infection":     "N39.0",
	"Cystitis":                    "N30.0",
	"Urethritis":                  "N34.2",
	"Pyelonephritis":              "N10",
	"Bacterial Infection":         "A49.9",
	"Viral Infection":             "B34.9",
	"Decompensated Diabetes":      "E14.9",
	"Anaphylactic Reaction":       "T78.2",
	"Food Allergy":                "T78.1",
	"Allergic Reaction":           "T78.4",
	"Urticaria":                   "L50.0",
	"Angioedema":                  "T78.3",
	"Aortic Dissection":           "I71.0",
}

const defaultBillingCode = "Unknown"

func treatmentFor(diagnosis string) string {
	if t, ok := treatments[diagnosis]; ok {
		return t
	}
	return defaultTreatment
}

func billingCodeFor(diagnosis string) string {
	if c, ok := billingCodes[diagnosis]; ok {
		return c
	}
	return defaultBillingCode
}
