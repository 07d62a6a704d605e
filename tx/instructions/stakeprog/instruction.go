// Package stakeprog builds and decodes the stake program instructions
// the wallet needs beyond what the solana-go library constructs:
// Split, Withdraw, Deactivate and Merge. Wire format is the bincode
// serialization of the stake program's instruction enum: a uint32
// little-endian discriminator followed by the payload, if any.
package stakeprog

import (
	"encoding/binary"
	"errors"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

// Instruction discriminator values (uint32 little-endian)
const (
	Instruction_Split      uint32 = 3
	Instruction_Withdraw   uint32 = 4
	Instruction_Deactivate uint32 = 5
	Instruction_Merge      uint32 = 7
)

type Instruction struct {
	ag_binary.BaseVariant
}

func (inst *Instruction) Obtain(def *ag_binary.VariantDefinition) (typeID ag_binary.TypeID, typeName string, impl interface{}) {
	return inst.BaseVariant.Obtain(def)
}

func DecodeInstruction(accounts []*ag_solanago.AccountMeta, data []byte) (*Instruction, error) {
	var inst Instruction
	if len(data) < 4 {
		return nil, errors.New("instruction data too short")
	}

	discriminator := binary.LittleEndian.Uint32(data[0:4])

	var impl interface {
		SetAccounts(accounts []*ag_solanago.AccountMeta) error
	}
	switch discriminator {
	case Instruction_Split:
		if len(data) < 12 {
			return nil, fmt.Errorf("instruction data too short for Split: expected 12 bytes, got %d", len(data))
		}
		lamports := binary.LittleEndian.Uint64(data[4:12])
		impl = &Split{Lamports: &lamports}
	case Instruction_Withdraw:
		if len(data) < 12 {
			return nil, fmt.Errorf("instruction data too short for Withdraw: expected 12 bytes, got %d", len(data))
		}
		lamports := binary.LittleEndian.Uint64(data[4:12])
		impl = &Withdraw{Lamports: &lamports}
	case Instruction_Deactivate:
		impl = &Deactivate{}
	case Instruction_Merge:
		impl = &Merge{}
	default:
		return nil, fmt.Errorf("invalid instruction discriminator: got 0x%08X", discriminator)
	}

	if err := impl.SetAccounts(accounts); err != nil {
		return nil, err
	}

	inst.BaseVariant = ag_binary.BaseVariant{
		TypeID: ag_binary.TypeIDFromUint32(discriminator, ag_binary.LE),
		Impl:   impl,
	}

	return &inst, nil
}
