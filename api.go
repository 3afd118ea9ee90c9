package lcclean

import (
	godal "github.com/airbusgeo/godal"
)

// GdalGeo is a geometry serialized as WKB.
type GdalGeo = []byte

type Dataset = godal.Dataset
