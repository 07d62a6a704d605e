package stakeprog

import (
	"encoding/binary"

	ag_binary "github.com/gagliardetto/binary"
	ag_solanago "github.com/gagliardetto/solana-go"
)

type Withdraw struct {
	Lamports *uint64

	// [0] = [WRITE] stake account
	// [1] = [WRITE] recipient
	// [2] = [] clock sysvar
	// [3] = [] stake history sysvar
	// [4] = [SIGNER] withdraw authority
	ag_solanago.AccountMetaSlice `bin:"-"`
}

func NewWithdrawInstruction(
	lamports uint64,
	stakeAccount ag_solanago.PublicKey,
	recipient ag_solanago.PublicKey,
	withdrawAuthority ag_solanago.PublicKey,
) *Withdraw {
	return &Withdraw{
		Lamports: &lamports,
		AccountMetaSlice: ag_solanago.AccountMetaSlice{
			ag_solanago.Meta(stakeAccount).WRITE(),
			ag_solanago.Meta(recipient).WRITE(),
			ag_solanago.Meta(ag_solanago.SysVarClockPubkey),
			ag_solanago.Meta(ag_solanago.SysVarStakeHistoryPubkey),
			ag_solanago.Meta(withdrawAuthority).SIGNER(),
		},
	}
}

func (inst *Withdraw) SetAccounts(accounts []*ag_solanago.AccountMeta) error {
	inst.AccountMetaSlice = accounts
	return nil
}

func (inst *Withdraw) GetAccounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *Withdraw) GetStakeAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 0 {
		return inst.AccountMetaSlice[0]
	}
	return nil
}

func (inst *Withdraw) GetRecipientAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 1 {
		return inst.AccountMetaSlice[1]
	}
	return nil
}

func (inst *Withdraw) GetWithdrawAuthorityAccount() *ag_solanago.AccountMeta {
	if len(inst.AccountMetaSlice) > 4 {
		return inst.AccountMetaSlice[4]
	}
	return nil
}

func (inst *Withdraw) ProgramID() ag_solanago.PublicKey {
	return ag_solanago.StakeProgramID
}

func (inst *Withdraw) Data() ([]byte, error) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], Instruction_Withdraw)
	binary.LittleEndian.PutUint64(buf[4:], *inst.Lamports)
	return buf, nil
}

func (inst *Withdraw) UnmarshalWithDecoder(decoder *ag_binary.Decoder) error {
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

func (inst *Withdraw) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	if err := encoder.WriteUint32(Instruction_Withdraw, ag_binary.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(*inst.Lamports, ag_binary.LE)
}

func (inst *Withdraw) Accounts() []*ag_solanago.AccountMeta {
	return inst.AccountMetaSlice
}
