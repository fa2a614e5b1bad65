/* Copyright (c) 2021 David Bulkow */

package session

import "github.com/dbulkow/roomreserve/internal/codec"

// Messages are the user facing texts for one locale.
type Messages struct {
	Created         string
	Cancelled       string
	Validation      string
	Ordering        string
	Overlap         string
	UnknownRoom     string
	Persist         string
	NotFound        string
	NothingToExport string
	NoReservations  string
	Today           string
}

type locale struct {
	messages Messages
	header   codec.Header
	prefix   string
}

var locales = map[string]locale{
	"ja": {
		messages: Messages{
			Created:         "予約が完了しました。",
			Cancelled:       "予約を取り消しました。",
			Validation:      "全ての項目を入力してください。",
			Ordering:        "終了時間は開始時間より後に設定してください。",
			Overlap:         "指定した時間には既に予約があります。別の時間を選択してください。",
			UnknownRoom:     "選択された会議室は存在しません。",
			Persist:         "予約データを保存できませんでした。",
			NotFound:        "指定された予約が見つかりません。",
			NothingToExport: "ダウンロードする予約データがありません。",
			NoReservations:  "予約はありません。",
			Today:           "本日",
		},
		header: codec.HeaderJA,
		prefix: codec.PrefixJA,
	},
	"en": {
		messages: Messages{
			Created:         "Reservation complete.",
			Cancelled:       "Reservation cancelled.",
			Validation:      "Please fill in every field.",
			Ordering:        "The end time must be after the start time.",
			Overlap:         "The room is already reserved for that time. Please choose another time.",
			UnknownRoom:     "The selected room does not exist.",
			Persist:         "The reservation could not be saved.",
			NotFound:        "No such reservation.",
			NothingToExport: "There are no reservations to download.",
			NoReservations:  "No reservations.",
			Today:           "Today",
		},
		header: codec.HeaderEN,
		prefix: codec.PrefixEN,
	},
}

func lookup(name string) locale {
	if l, ok := locales[name]; ok {
		return l
	}
	return locales["ja"]
}

// CodecOptions returns the CSV header and filename prefix for a locale.
func CodecOptions(name string) []codec.Option {
	l := lookup(name)
	return []codec.Option{codec.WithHeader(l.header), codec.WithPrefix(l.prefix)}
}
