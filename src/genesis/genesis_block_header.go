package genesis

import (
	"github.com/overline-mining/nemgen/src/entity"
)

// nemesis block constants, none of them are configurable
const (
	NEMESIS_BLOCK_TYPE = 0xFFFFFFFF
	VERSION            = 1
	HEIGHT             = 1
	TIMESTAMP          = 0

	MICROS_PER_UNIT = 1000000
)

// offsets into the unsigned block payload
const (
	GenerationHashOffset = entity.EntityHeaderSize + 4
	HeightOffset         = GenerationHashOffset + entity.HashSize
	TxCountOffset        = HeightOffset + 8
	TransactionsOffset   = TxCountOffset + 4
)
