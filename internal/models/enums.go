package models

type Category string

const (
	CategoryFlood      Category = "flood"
	CategoryEarthquake Category = "earthquake"
	CategoryFire       Category = "fire"
	CategoryLandslide  Category = "landslide"
	CategoryTsunami    Category = "tsunami"
	CategoryVolcano    Category = "volcano"
	CategoryStorm      Category = "storm"
)

var Categories = []Category{
	CategoryFlood, CategoryEarthquake, CategoryFire, CategoryLandslide,
	CategoryTsunami, CategoryVolcano, CategoryStorm,
}

func (c Category) Valid() bool { return contains(Categories, c) }

type Severity string

const (
	SeverityEmergency Severity = "Emergency"
	SeverityCritical  Severity = "Critical"
	SeverityAlert     Severity = "Alert"
	SeverityNormal    Severity = "Normal"
)

// Severities is ordered by urgency, most urgent first.
var Severities = []Severity{SeverityEmergency, SeverityCritical, SeverityAlert, SeverityNormal}

func (s Severity) Valid() bool { return contains(Severities, s) }

// Rank returns 4 for Emergency down to 1 for Normal, 0 for unknown values.
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return len(Severities) - i
		}
	}
	return 0
}

type ReportType string

const (
	ReportTypeDisaster       ReportType = "disaster"
	ReportTypeInfrastructure ReportType = "infrastructure"
	ReportTypeNeeds          ReportType = "needs"
)

var ReportTypes = []ReportType{ReportTypeDisaster, ReportTypeInfrastructure, ReportTypeNeeds}

func (t ReportType) Valid() bool { return contains(ReportTypes, t) }

type Status string

const (
	StatusPending  Status = "Pending"
	StatusVerified Status = "Verified"
	StatusRejected Status = "Rejected"
)

var Statuses = []Status{StatusPending, StatusVerified, StatusRejected}

func (s Status) Valid() bool { return contains(Statuses, s) }

// Decided reports whether s is the outcome of a verification decision.
func (s Status) Decided() bool {
	return s == StatusVerified || s == StatusRejected
}

type InfraType string

const (
	InfraRoad     InfraType = "Road"
	InfraBridge   InfraType = "Bridge"
	InfraHospital InfraType = "Hospital"
	InfraSchool   InfraType = "School"
	InfraPower    InfraType = "Power"
	InfraWater    InfraType = "Water"
)

var InfraTypes = []InfraType{InfraRoad, InfraBridge, InfraHospital, InfraSchool, InfraPower, InfraWater}

func (t InfraType) Valid() bool { return contains(InfraTypes, t) }

type InfraCondition string

const (
	InfraOperational InfraCondition = "Operational"
	InfraDamaged     InfraCondition = "Damaged"
	InfraDestroyed   InfraCondition = "Destroyed"
)

var InfraConditions = []InfraCondition{InfraOperational, InfraDamaged, InfraDestroyed}

func (c InfraCondition) Valid() bool { return contains(InfraConditions, c) }

type Sentiment string

const (
	SentimentUrgent     Sentiment = "Urgent"
	SentimentConcerned  Sentiment = "Concerned"
	SentimentStable     Sentiment = "Stable"
	SentimentRecovering Sentiment = "Recovering"
)

var Sentiments = []Sentiment{SentimentUrgent, SentimentConcerned, SentimentStable, SentimentRecovering}

func (s Sentiment) Valid() bool { return contains(Sentiments, s) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
