package ibmiutil

import (
	"fmt"
	"time"

	ibmi "github.com/ibmigo/ibmiconnector"
	"github.com/ibmigo/ibmiconnector/internal/codec"
)

// UserInfo is the subset of QSYRUSRI format USRI0300 this wrapper
// exposes.
type UserInfo struct {
	ProfileName        string
	UserClass          string
	Status             string
	PasswordExpiration time.Time
}

// usri0300ReceiverLength is large enough to hold the fixed-offset
// fields this wrapper reads; QSYRUSRI truncates silently if the
// receiver is shorter than the format, so bytesAvailable is not
// consulted here.
const usri0300ReceiverLength = 256

// USRI0300 field offsets within the receiver variable.
const (
	usri0300ProfileNameOffset   = 8
	usri0300UserClassOffset     = 18
	usri0300StatusOffset        = 28
	usri0300PasswordExpireDTS   = 38
	usri0300PasswordExpireWidth = 8
)

// RetrieveUserInfo calls QSYRUSRI format USRI0300 for profile and
// slices out its profile name, user class, status, and password
// expiration timestamp.
func RetrieveUserInfo(session *ibmi.Session, profile string) (UserInfo, error) {
	receiver := ibmi.NewProgramCallParameter(ibmi.ParameterOutput, nil, usri0300ReceiverLength)
	receiverLen := ibmi.NewProgramCallParameter(ibmi.ParameterInput, codec.PutUint32(usri0300ReceiverLength), 4)
	format := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText("USRI0300"), 8)
	profileName := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText(padRight(profile, 10)), 10)
	errCode := errorCodeParameter()

	params := ibmi.NewProgramCallParameters(receiver, receiverLen, format, profileName, errCode)

	messages, resultCode, err := session.CallProgram("QSYRUSRI", "QSYS", params)
	if err != nil {
		return UserInfo{}, err
	}
	if resultCode != 0 {
		return UserInfo{}, callError(resultCode, messages)
	}

	data := params[0].Payload
	if len(data) < usri0300PasswordExpireDTS+usri0300PasswordExpireWidth {
		return UserInfo{}, fmt.Errorf("ibmiutil: USRI0300 receiver shorter than expected (%d bytes)", len(data))
	}

	expireRaw := codec.Uint64(data[usri0300PasswordExpireDTS : usri0300PasswordExpireDTS+usri0300PasswordExpireWidth])

	return UserInfo{
		ProfileName:        session.DecodeText(data[usri0300ProfileNameOffset : usri0300ProfileNameOffset+10]),
		UserClass:          session.DecodeText(data[usri0300UserClassOffset : usri0300UserClassOffset+10]),
		Status:             session.DecodeText(data[usri0300StatusOffset : usri0300StatusOffset+10]),
		PasswordExpiration: codec.DecodeDTS(expireRaw),
	}, nil
}
