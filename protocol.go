package ibmi

// Server IDs identify which host server a datagram targets; they
// occupy the second half of the header's first 4 bytes (spec §4.5).
const (
	serverIDSignonVerify  uint16 = 0xE009
	serverIDRemoteCommand uint16 = 0xE008
)

// ReqRep IDs select the operation a datagram requests.
const (
	reqRepSignonExchangeAttributes uint16 = 0x7003
	reqRepSignonAuthenticate       uint16 = 0x7004

	reqRepRCExchangeRandomSeeds uint16 = 0x7001
	reqRepRCAuthenticate        uint16 = 0x7002
	reqRepRCRetrieveInfo        uint16 = 0x1001
	reqRepRCCallCommand         uint16 = 0x1002
	reqRepRCCallProgram         uint16 = 0x1003
)

// Dynamic field CP codes, scoped per ReqRep context (the same numeric
// code means different things under different ReqRep IDs, per the
// platform's own convention).
const (
	cpClientVersion         uint16 = 0x1101
	cpClientDatastreamLevel uint16 = 0x1102
	cpClientSeed            uint16 = 0x1103
	cpUserID                uint16 = 0x1104
	cpPassword              uint16 = 0x1105
	cpClientCCSID           uint16 = 0x1113
	cpServerCCSID           uint16 = 0x1114
	cpPasswordLevel         uint16 = 0x1119
	cpReturnErrorMessages   uint16 = 0x1128
	cpJobName               uint16 = 0x111F

	cpCommandEBCDIC  uint16 = 0x1101
	cpCommandUTF16BE uint16 = 0x1104

	cpProgramParameter uint16 = 0x1103

	cpMessageLegacy   uint16 = 0x1102
	cpMessageExtended uint16 = 0x1106
)

// Password encryption type, sent in the Sign-on Verify authentication
// template byte (spec §4.5).
const (
	pwdEncTypeDES  uint8 = 1
	pwdEncTypeSHA1 uint8 = 3
)

// Message-option byte derived from the negotiated datastream level
// (spec §4.6).
func messageOptionForDatastreamLevel(level uint16) uint8 {
	switch {
	case level < 7:
		return 0
	case level < 10:
		return 2
	default:
		return 4
	}
}

// acceptableServerInfoResultCodes is the set of 2-byte result codes
// RetrieveRemoteCommandServerInformation tolerates as success (spec
// §4.5, §7).
var acceptableServerInfoResultCodes = map[uint16]bool{
	0x0000: true,
	0x0100: true,
	0x0104: true,
	0x0105: true,
	0x0106: true,
	0x0107: true,
	0x0108: true,
}
