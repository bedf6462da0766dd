package world

// BlockID identifies a block type. Classic worlds fit in a byte.
type BlockID uint8

// BlockCount is the number of addressable block slots.
const BlockCount = 256

// Classic block IDs used by the generator and the default definitions.
const (
	BlockAir BlockID = iota
	BlockStone
	BlockGrass
	BlockDirt
	BlockCobblestone
	BlockPlanks
	BlockSapling
	BlockBedrock
	BlockWater
	BlockStillWater
	BlockLava
	BlockStillLava
	BlockSand
	BlockGravel
	BlockGoldOre
	BlockIronOre
	BlockCoalOre
	BlockLog
	BlockLeaves
	BlockSponge
	BlockGlass
)

const (
	BlockDandelion BlockID = 37 + iota
	BlockRose
	BlockBrownMushroom
	BlockRedMushroom
	BlockGold
	BlockIron
	BlockDoubleSlab
	BlockSlab
	BlockBrick
	BlockTNT
	BlockBookshelf
	BlockMossyRocks
	BlockObsidian
)

// Face is one of the six axis-aligned faces of a voxel.
type Face uint8

const (
	FaceXMin Face = iota
	FaceXMax
	FaceZMin
	FaceZMax
	FaceYMin
	FaceYMax
)

// FaceCount is the number of faces of a voxel.
const FaceCount = 6

var faceNames = [FaceCount]string{"XMin", "XMax", "ZMin", "ZMax", "YMin", "YMax"}

func (f Face) String() string {
	if int(f) < FaceCount {
		return faceNames[f]
	}
	return "Face(?)"
}

// Opposite returns the face on the other side of the voxel.
func (f Face) Opposite() Face { return f ^ 1 }

// Normal returns the unit offset towards the neighbour across f.
func (f Face) Normal() (dx, dy, dz int) {
	switch f {
	case FaceXMin:
		return -1, 0, 0
	case FaceXMax:
		return 1, 0, 0
	case FaceZMin:
		return 0, 0, -1
	case FaceZMax:
		return 0, 0, 1
	case FaceYMin:
		return 0, -1, 0
	default:
		return 0, 1, 0
	}
}
