package ibmiutil

import (
	"fmt"
	"strings"

	ibmi "github.com/ibmigo/ibmiconnector"
	"github.com/ibmigo/ibmiconnector/internal/codec"
)

// qgyolausListInfoLength is the Open List API's generic list
// information header size (IBM's "Format of List Information"),
// constant across every QGY* open-list API.
const qgyolausListInfoLength = 80

const (
	qgyolausRecordsReturnedOffset = 4
	qgyolausRecordLengthOffset    = 12
)

const auth0150EntryProfileNameWidth = 10

// maxListUsersRecords bounds the single-call receiver this wrapper
// allocates; it does not page through QGYGTLE for a list that didn't
// fit in one receiver.
const maxListUsersRecords = 4096

// ListUsers calls QGYOLAUS with format AUTU0150 and returns the
// profile names of every user the call returns. Selection and sort
// criteria are left at their all-users defaults.
func ListUsers(session *ibmi.Session) ([]string, error) {
	receiverLen := maxListUsersRecords * auth0150EntryProfileNameWidth

	receiver := ibmi.NewProgramCallParameter(ibmi.ParameterOutput, nil, receiverLen)
	receiverLenParam := ibmi.NewProgramCallParameter(ibmi.ParameterInput, codec.PutUint32(uint32(receiverLen)), 4)
	listInfo := ibmi.NewProgramCallParameter(ibmi.ParameterOutput, nil, qgyolausListInfoLength)
	numberOfRecords := ibmi.NewProgramCallParameter(ibmi.ParameterInput, codec.PutUint32(uint32(0xFFFFFFFF)), 4) // -1: return all
	format := ibmi.NewProgramCallParameter(ibmi.ParameterInput, session.EncodeText("AUTU0150"), 8)
	errCode := errorCodeParameter()

	params := ibmi.NewProgramCallParameters(receiver, receiverLenParam, listInfo, numberOfRecords, format, errCode)

	messages, resultCode, err := session.CallProgram("QGYOLAUS", "QSYS", params)
	if err != nil {
		return nil, err
	}
	if resultCode != 0 {
		return nil, callError(resultCode, messages)
	}

	info := params[2].Payload
	if len(info) < qgyolausRecordLengthOffset+4 {
		return nil, fmt.Errorf("ibmiutil: AUTU0150 list information shorter than expected (%d bytes)", len(info))
	}
	recordsReturned := int(codec.Uint32(info[qgyolausRecordsReturnedOffset : qgyolausRecordsReturnedOffset+4]))
	recordLength := int(codec.Uint32(info[qgyolausRecordLengthOffset : qgyolausRecordLengthOffset+4]))
	if recordLength <= 0 {
		recordLength = auth0150EntryProfileNameWidth
	}

	data := params[0].Payload
	names := make([]string, 0, recordsReturned)
	for i := 0; i < recordsReturned; i++ {
		start := i * recordLength
		end := start + auth0150EntryProfileNameWidth
		if end > len(data) {
			break
		}
		names = append(names, strings.TrimRight(session.DecodeText(data[start:end]), " "))
	}

	return names, nil
}
