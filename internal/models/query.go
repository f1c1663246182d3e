package models

import "fmt"

const DateLayout = "2006-01-02"

type Region string

const (
	RegionGlobal      Region = "global"
	RegionIndianOcean Region = "indian-ocean"
	RegionArabianSea  Region = "arabian-sea"
	RegionBayOfBengal Region = "bay-of-bengal"
)

var Regions = []Region{RegionGlobal, RegionIndianOcean, RegionArabianSea, RegionBayOfBengal}

type Dataset string

const (
	DatasetArgoCore  Dataset = "argo-core"
	DatasetBGCFloats Dataset = "bgc-floats"
)

var Datasets = []Dataset{DatasetArgoCore, DatasetBGCFloats}

// Parameters offered by the dashboard's filter panel
const (
	ParameterTemperature = "temperature"
	ParameterSalinity    = "salinity"
	ParameterOxygen      = "oxygen"
	ParameterChlorophyll = "chlorophyll"
)

// QueryParams are the filter criteria sent to every data source. All fields are optional.
type QueryParams struct {
	Region     Region   `json:"region,omitempty" dynamodbav:"region,omitempty"`
	StartDate  string   `json:"startDate,omitempty" dynamodbav:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty" dynamodbav:"endDate,omitempty"`
	Parameters []string `json:"parameters,omitempty" dynamodbav:"parameters,omitempty"`
	Dataset    Dataset  `json:"dataset,omitempty" dynamodbav:"dataset,omitempty"`
}

func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid region: %q", s)
}

func ParseDataset(s string) (Dataset, error) {
	for _, d := range Datasets {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid dataset: %q", s)
}
