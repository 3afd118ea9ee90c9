package lcclean

// DDD land-cover codes (CAFI regional taxonomy).
const (
	ClassNone           = 0  // unclassified / no-data
	ClassDenseForest    = 1  // forêt dense
	ClassDryDenseForest = 2  // forêt dense sèche
	ClassSecondary      = 3  // forêt secondaire
	ClassDryOpenForest  = 4  // forêt claire sèche
	ClassSubmontane     = 5  // forêt sub-montagnarde
	ClassMontane        = 6  // forêt montagnarde
	ClassMangrove       = 7  // mangrove
	ClassSwampForest    = 8  // forêt marécageuse
	ClassGalleryForest  = 9  // forêt galerie
	ClassPlantation     = 10 // plantations
	ClassTreeSavanna    = 11 // savane arborée
	ClassShrubSavanna   = 12 // savane arbustive
	ClassGrassSavanna   = 13 // savane herbacée
	ClassAquaticGrass   = 14 // prairie aquatique
	ClassBareSoil       = 15 // sols nus
	ClassCropland       = 16 // terres cultivées
	ClassBuiltUp        = 17 // zones bâties
	ClassWater          = 18 // eau
	ClassShrubSavannaNF = 19 // savane arbustive, non-forêt
)

// Forest/non-forest product codes.
const (
	FnfForest    = 1
	FnfNonForest = 2
	FnfWater     = 3
)

// JRC yearly water history classes.
const (
	WaterNone      = 1
	WaterSeasonal  = 2
	WaterPermanent = 3
)

// Country IDs in the CAFI countries raster.
const (
	CountryCameroon = 2
	CountryCAR      = 3
	CountryGabon    = 6
)

// ESA WorldCover mangrove class.
const esaMangroveCode = 95

var (
	// SEPAL classifier output codes to DDD codes.
	sepalCodes = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	sepalToDDD = []int{1, 2, 3, 4, 7, 8, 9, 11, 12, 13, 14, 15, 16, 17, 18}

	// GHS built-up 6-level confidence scale to a binary indicator.
	builtupLevels = []int{1, 2, 3, 4, 5, 6}
	builtupBinary = []int{0, 0, 1, 1, 1, 1}

	// DDD codes to the 3-class FNF scheme. Plantations (10) are absent on
	// purpose and fall out of the product, matching the reference tables.
	dddCodes = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 16, 17, 18}
	dddToFnf = []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 3}
)

// ClassNames maps DDD codes to their legend labels.
var ClassNames = map[int]string{
	ClassDenseForest:    "Forêt Dense",
	ClassDryDenseForest: "Forêt Dense Sèche",
	ClassSecondary:      "Forêt Secondaire",
	ClassDryOpenForest:  "Forêt Claire Sèche",
	ClassSubmontane:     "Forêt Sub-Montagnarde",
	ClassMontane:        "Forêt Montagnarde",
	ClassMangrove:       "Mangrove",
	ClassSwampForest:    "Forêt Marécageuse",
	ClassGalleryForest:  "Forêt Galerie",
	ClassPlantation:     "Plantations",
	ClassTreeSavanna:    "Savane Arborée",
	ClassShrubSavanna:   "Savane Arbustive",
	ClassGrassSavanna:   "Savane Herbacée",
	ClassAquaticGrass:   "Prairie Aquatique",
	ClassBareSoil:       "Sols Nus",
	ClassCropland:       "Terres Cultivées",
	ClassBuiltUp:        "Zones Bâties",
	ClassWater:          "Eau",
	ClassShrubSavannaNF: "Savane Arbustive - NF",
}
