package stakeprog

import (
	"encoding/binary"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type Merge struct {
	// [0] = [WRITE] destination stake account
	// [1] = [WRITE] source stake account, drained and closed
	// [2] = [] clock sysvar
	// [3] = [] stake history sysvar
	// [4] = [SIGNER] stake authority
	ag_solanago.AccountMetaSlice `bin:"-"`
}

func NewMergeInstruction(
	destinationStakeAccount ag_solanago.PublicKey,
	sourceStakeAccount ag_solanago.PublicKey,
	stakeAuthority ag_solanago.PublicKey,
) *Merge {
	return &Merge{
		AccountMetaSlice: ag_solanago.AccountMetaSlice{
			ag_solanago.Meta(destinationStakeAccount).WRITE(),
			ag_solanago.Meta(sourceStakeAccount).WRITE(),
			ag_solanago.Meta(ag_solanago.SysVarClockPubkey),
			ag_solanago.Meta(ag_solanago.SysVarStakeHistoryPubkey),
			ag_solanago.Meta(stakeAuthority).SIGNER(),
		},
	}
}

func (inst *Merge) SetAccounts(accounts []*ag_solanago.AccountMeta) error {
	inst.AccountMetaSlice = accounts
	return nil
}

func (inst *Merge) GetAccounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *Merge) GetDestinationAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 0 {
		return inst.AccountMetaSlice[0]
	}
	return nil
}

func (inst *Merge) GetSourceAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 1 {
		return inst.AccountMetaSlice[1]
	}
	return nil
}

func (inst *Merge) GetStakeAuthorityAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 4 {
		return inst.AccountMetaSlice[4]
	}
	return nil
}

func (inst *Merge) ProgramID() ag_solanago.PublicKey {
	return ag_solanago.StakeProgramID
}

func (inst *Merge) Data() ([]byte, error) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, Instruction_Merge)
	return buf, nil
}

func (inst *Merge) UnmarshalWithDecoder(decoder *ag_binary.Decoder) error {
	// Skip discriminator (4 bytes, already checked)
	_, err := decoder.ReadNBytes(4)
	return err
}

func (inst *Merge) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	return encoder.WriteUint32(Instruction_Merge, ag_binary.LE)
}

func (inst *Merge) Accounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}
