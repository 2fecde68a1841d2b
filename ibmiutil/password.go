package ibmiutil

import (
	"fmt"

	ibmi "github.com/ibmigo/ibmiconnector"
	"github.com/ibmigo/ibmiconnector/internal/codec"
)

// ChangePassword calls QSYCHGPW to change user's password from oldPw
// to newPw.
func ChangePassword(session *ibmi.Session, user, oldPw, newPw string) error {
	userParam := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText(padRight(user, 10)), 10)
	oldParam := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText(padRight(oldPw, 10)), 10)
	newParam := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText(padRight(newPw, 10)), 10)
	errCode := errorCodeParameter()

	params := ibmi.NewProgramCallParameters(userParam, oldParam, newParam, errCode)

	messages, resultCode, err := session.CallProgram("QSYCHGPW", "QSYS", params)
	if err != nil {
		return err
	}
	if resultCode != 0 {
		return callError(resultCode, messages)
	}
	return nil
}

// PasswordHash is one encrypted password value QSYRUPWD returns.
type PasswordHash struct {
	EncryptionType uint32
	Hash           []byte
}

// pwdi0010EncryptionTypeAny requests whatever hash format the system
// is configured to hold (spec §4.7: requires *SECADM/*ALLOBJ authority
// on the target system).
const pwdi0010EncryptionTypeAny = 1

const pwdi0010ReceiverLength = 256

// RetrievePasswordHash calls QSYRUPWD format PWDI0010 and returns the
// first password-info entry.
func RetrievePasswordHash(session *ibmi.Session, user string) (PasswordHash, error) {
	receiver := ibmi.NewProgramCallParameter(ibmi.ParameterOutput, nil, pwdi0010ReceiverLength)
	receiverLen := ibmi.NewProgramCallParameter(ibmi.ParameterInput, codec.PutUint32(pwdi0010ReceiverLength), 4)
	format := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText("PWDI0010"), 8)
	userProfile := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText(padRight(user, 10)), 10)
	encType := ibmi.NewProgramCallParameter(ibmi.ParameterInput, codec.PutUint32(pwdi0010EncryptionTypeAny), 4)
	errCode := errorCodeParameter()

	params := ibmi.NewProgramCallParameters(receiver, receiverLen, format, userProfile, encType, errCode)

	messages, resultCode, err := session.CallProgram("QSYRUPWD", "QSYS", params)
	if err != nil {
		return PasswordHash{}, err
	}
	if resultCode != 0 {
		return PasswordHash{}, callError(resultCode, messages)
	}

	data := params[0].Payload
	if len(data) < 16 {
		return PasswordHash{}, fmt.Errorf("ibmiutil: PWDI0010 receiver shorter than expected (%d bytes)", len(data))
	}
	numberOfPasswords := codec.Uint32(data[8:12])
	if numberOfPasswords == 0 {
		return PasswordHash{}, fmt.Errorf("ibmiutil: QSYRUPWD returned no password entries for %q", user)
	}
	entryOffset := codec.Uint32(data[12:16])
	if int(entryOffset)+8 > len(data) {
		return PasswordHash{}, fmt.Errorf("ibmiutil: PWDI0010 entry offset %d out of range", entryOffset)
	}

	entryEncType := codec.Uint32(data[entryOffset : entryOffset+4])
	pwdLen := codec.Uint32(data[entryOffset+4 : entryOffset+8])
	hashStart := entryOffset + 8
	hashEnd := hashStart + pwdLen
	if int(hashEnd) > len(data) {
		return PasswordHash{}, fmt.Errorf("ibmiutil: PWDI0010 password data out of range (%d bytes)", len(data))
	}

	hash := make([]byte, pwdLen)
	copy(hash, data[hashStart:hashEnd])

	return PasswordHash{EncryptionType: entryEncType, Hash: hash}, nil
}
