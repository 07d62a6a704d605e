package stakeprog

import (
	"encoding/binary"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type Deactivate struct {
	// [0] = [WRITE] stake account
	// [1] = [] clock sysvar
	// [2] = [SIGNER] stake authority
	ag_solanago.AccountMetaSlice `bin:"-"`
}

func NewDeactivateInstruction(
	stakeAccount ag_solanago.PublicKey,
	stakeAuthority ag_solanago.PublicKey,
) *Deactivate {
	return &Deactivate{
		AccountMetaSlice: ag_solanago.AccountMetaSlice{
			ag_solanago.Meta(stakeAccount).WRITE(),
			ag_solanago.Meta(ag_solanago.SysVarClockPubkey),
			ag_solanago.Meta(stakeAuthority).SIGNER(),
		},
	}
}

func (inst *Deactivate) SetAccounts(accounts []*ag_solanago.AccountMeta) error {
	inst.AccountMetaSlice = accounts
	return nil
}

func (inst *Deactivate) GetAccounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *Deactivate) GetStakeAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 0 {
		return inst.AccountMetaSlice[0]
	}
	return nil
}

func (inst *Deactivate) GetStakeAuthorityAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 2 {
		return inst.AccountMetaSlice[2]
	}
	return nil
}

func (inst *Deactivate) ProgramID() ag_solanago.PublicKey {
	return ag_solanago.StakeProgramID
}

func (inst *Deactivate) Data() ([]byte, error) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, Instruction_Deactivate)
	return buf, nil
}

func (inst *Deactivate) UnmarshalWithDecoder(decoder *ag_binary.Decoder) error {
	// Skip discriminator (4 bytes, already checked)
	_, err := decoder.ReadNBytes(4)
	return err
}

func (inst *Deactivate) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	return encoder.WriteUint32(Instruction_Deactivate, ag_binary.LE)
}

func (inst *Deactivate) Accounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}
