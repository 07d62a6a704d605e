package stakeprog

import (
	"encoding/binary"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type Split struct {
	Lamports *uint64

	// [0] = [WRITE] source stake account
	// [1] = [WRITE] destination stake account
	// [2] = [SIGNER] stake authority
	ag_solanago.AccountMetaSlice `bin:"-"`
}

func NewSplitInstruction(
	lamports uint64,
	sourceStakeAccount ag_solanago.PublicKey,
	destinationStakeAccount ag_solanago.PublicKey,
	stakeAuthority ag_solanago.PublicKey,
) *Split {
	return &Split{
		Lamports: &lamports,
		AccountMetaSlice: ag_solanago.AccountMetaSlice{
			ag_solanago.Meta(sourceStakeAccount).WRITE(),
			ag_solanago.Meta(destinationStakeAccount).WRITE(),
			ag_solanago.Meta(stakeAuthority).SIGNER(),
		},
	}
}

func (inst *Split) SetAccounts(accounts []*ag_solanago.AccountMeta) error {
	inst.AccountMetaSlice = accounts
	return nil
}

func (inst *Split) GetAccounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *Split) GetSourceAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 0 {
		return inst.AccountMetaSlice[0]
	}
	return nil
}

func (inst *Split) GetDestinationAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 1 {
		return inst.AccountMetaSlice[1]
	}
	return nil
}

func (inst *Split) GetStakeAuthorityAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 2 {
		return inst.AccountMetaSlice[2]
	}
	return nil
}

func (inst *Split) ProgramID() ag_solanago.PublicKey {
	return ag_solanago.StakeProgramID
}

func (inst *Split) Data() ([]byte, error) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], Instruction_Split)
	binary.LittleEndian.PutUint64(buf[4:], *inst.Lamports)
	return buf, nil
}

func (inst *Split) UnmarshalWithDecoder(decoder *ag_binary.Decoder) error {
	// Skip discriminator (4 bytes, already checked)
	_, err := decoder.ReadNBytes(4)
	if err != nil {
		return err
	}

	val, err := decoder.ReadUint64(ag_binary.LE)
	if err != nil {
		return err
	}
	inst.Lamports = &val
	return nil
}

func (inst *Split) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	if err := encoder.WriteUint32(Instruction_Split, ag_binary.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(*inst.Lamports, ag_binary.LE)
}

func (inst *Split) Accounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}
