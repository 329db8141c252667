package message

import (
	"encoding/json"
	"testing"
	"time"

	"local/islanders/board"
	"local/islanders/simple"
)

func TestUnmarshalClientRetypes(t *testing.T) {
	in := Client{
		CType: PutPiece,
		Data: PutPieceData{
			Piece: simple.Road,
			Coord: board.Coord(0x67),
		},
	}
	bytes, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	out, err := UnmarshalClient(bytes)
	if err != nil {
		t.Fatal(err)
	}
	d, ok := out.Data.(PutPieceData)
	if !ok {
		t.Fatalf("Data retyped to %T", out.Data)
	}
	if d.Piece != simple.Road || d.Coord != board.Coord(0x67) {
		t.Fatalf("payload mangled: %+v", d)
	}
}

func TestUnmarshalClientTrade(t *testing.T) {
	in := Client{
		CType: OfferTrade,
		Data: OfferTradeData{
			Give: simple.NewResourceSet(1, 0, 0, 0, 0),
			Get:  simple.NewResourceSet(0, 0, 1, 0, 0),
			To:   []int{1, 3},
		},
	}
	bytes, _ := json.Marshal(in)
	out, err := UnmarshalClient(bytes)
	if err != nil {
		t.Fatal(err)
	}
	d := out.Data.(OfferTradeData)
	if d.Give.Amount(simple.Clay) != 1 || d.Get.Amount(simple.Sheep) != 1 {
		t.Fatalf("resource sets mangled: %+v", d)
	}
	if len(d.To) != 2 || d.To[0] != 1 || d.To[1] != 3 {
		t.Fatalf("To mangled: %v", d.To)
	}
}

func TestUnmarshalClientUnknownCType(t *testing.T) {
	if _, err := UnmarshalClient([]byte(`{"CType": 9999, "Data": {}}`)); err == nil {
		t.Fatal("unknown CType accepted")
	}
	if _, err := UnmarshalClient([]byte(`not json`)); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestUnmarshalServerRetypes(t *testing.T) {
	in := NewNotifyDiceRoll(2, 8)
	bytes, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := UnmarshalServer(bytes)
	if err != nil {
		t.Fatal(err)
	}
	d, ok := out.Data.(NotifyDiceRollData)
	if !ok {
		t.Fatalf("Data retyped to %T", out.Data)
	}
	if d.Seat != 2 || d.Roll != 8 {
		t.Fatalf("payload mangled: %+v", d)
	}
}

func TestUnmarshalServerNotification(t *testing.T) {
	in := NewNotifyNotification(NotificationWarn, "Turn Forced", "Seat 1 ran out of time")
	bytes, _ := json.Marshal(in)
	out, err := UnmarshalServer(bytes)
	if err != nil {
		t.Fatal(err)
	}
	d := out.Data.(NotifyNotificationData)
	if d.Type != NotificationWarn || d.Header != "Turn Forced" {
		t.Fatalf("payload mangled: %+v", d)
	}
	if out.Time.After(time.Now().Add(time.Minute)) {
		t.Fatal("bad timestamp")
	}
}

func TestUnmarshalServerUnknownSType(t *testing.T) {
	if _, err := UnmarshalServer([]byte(`{"SType": 9999, "Data": {}}`)); err == nil {
		t.Fatal("unknown SType accepted")
	}
}
