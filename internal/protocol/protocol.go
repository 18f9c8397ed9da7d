// Package protocol defines the wire message types and the
// length-prefixed frame codec used between clients and the server.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Message types. Success replies echo the request's type; failures use
// the dedicated E* tags.
const (
	TypeOK     byte = 0x00
	TypeLogin  byte = 0x10
	TypeLogout byte = 0x11

	TypeAuctionCreate byte = 0x20
	TypeAuctionClosed byte = 0x21
	TypeAuctionList   byte = 0x22
	TypeAuctionWatch  byte = 0x23
	TypeAuctionLeave  byte = 0x24
	TypeAuctionBid    byte = 0x25
	TypeAuctionUpdate byte = 0x26

	TypeUserList    byte = 0x30
	TypeUserWins    byte = 0x31
	TypeUserSales   byte = 0x32
	TypeUserBalance byte = 0x33

	TypeErrLoggedIn      byte = 0xF0
	TypeErrWrongPassword byte = 0xF1
	TypeErrServ          byte = 0xF2
	TypeErrInvalidArg    byte = 0xF3
	TypeErrNotFound      byte = 0xF4
	TypeErrFull          byte = 0xF5
	TypeErrDenied        byte = 0xF6
	TypeErrBidLow        byte = 0xF7
)

// Payload delimiters. Fields of one record are separated by ArgDelim;
// list-style replies separate fields with FieldDelim and records with
// RecordDelim.
const (
	ArgDelim    = "\r\n"
	FieldDelim  = ";"
	RecordDelim = "\n"
)

var typeNames = map[byte]string{
	TypeOK:               "OK",
	TypeLogin:            "LOGIN",
	TypeLogout:           "LOGOUT",
	TypeAuctionCreate:    "ANCREATE",
	TypeAuctionClosed:    "ANCLOSED",
	TypeAuctionList:      "ANLIST",
	TypeAuctionWatch:     "ANWATCH",
	TypeAuctionLeave:     "ANLEAVE",
	TypeAuctionBid:       "ANBID",
	TypeAuctionUpdate:    "ANUPDATE",
	TypeUserList:         "USRLIST",
	TypeUserWins:         "USRWINS",
	TypeUserSales:        "USRSALES",
	TypeUserBalance:      "USRBLNC",
	TypeErrLoggedIn:      "EUSRLGDIN",
	TypeErrWrongPassword: "EWRNGPWD",
	TypeErrServ:          "ESERV",
	TypeErrInvalidArg:    "EINVALIDARG",
	TypeErrNotFound:      "EANNOTFOUND",
	TypeErrFull:          "EANFULL",
	TypeErrDenied:        "EANDENIED",
	TypeErrBidLow:        "EBIDLOW",
}

// Name returns the protocol tag for a message type, for logging.
func Name(msgType byte) string {
	if n, ok := typeNames[msgType]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", msgType)
}

const (
	// HeaderSize is 1 byte version, 1 byte type, 4 bytes payload length.
	HeaderSize = 6

	// Version is the only frame version in use.
	Version byte = 1

	// MaxPayload caps a single frame's payload at 1MB.
	MaxPayload = 1024 * 1024
)

// Frame is one decoded wire message.
type Frame struct {
	Version byte
	Type    byte
	Payload []byte
}

// WriteFrame encodes and writes one frame.
func WriteFrame(w io.Writer, msgType byte, payload []byte) error {
	header := make([]byte, HeaderSize)
	header[0] = Version
	header[1] = msgType
	binary.BigEndian.PutUint32(header[2:], uint32(len(payload)))
	_, err := w.Write(append(header, payload...))
	return err
}

// ReadFrame blocks until a full frame arrives and decodes it.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(header[2:])
	if length > MaxPayload {
		return nil, fmt.Errorf("payload too large: %d", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return &Frame{
		Version: header[0],
		Type:    header[1],
		Payload: payload,
	}, nil
}
