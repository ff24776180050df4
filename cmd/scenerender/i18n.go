// Package main provides localization for the scenerender CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Render a scene to a video file.":    "シーンを動画ファイルにレンダリング",
		"Render a declarative, frame-indexed browser scene to a video file.": "宣言的でフレーム単位のブラウザシーンを動画ファイルにレンダリングします。",
		"Show version information.":          "バージョン情報を表示",

		"Recording %s (%d frames)...": "%s を記録中 (%d フレーム)...",
		"Output saved to %s":          "出力を %s に保存しました",
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		"scenerender version %s": "scenerender バージョン %s",
	})
}
