package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration lifecycle
		"Starting render of %d frames at %d fps": "%d フレームを %d fps でレンダリング開始",
		"Bundled scene entry: %s":                 "シーンエントリをバンドルしました: %s",
		"Media service listening on port %d":      "メディアサービスがポート %d で待機中",
		"Browser launched (headless=%v)":          "ブラウザを起動しました (headless=%v)",
		"Rendered all %d parts":                   "%d パートすべてのレンダリングが完了しました",
		"Run completed in %s":                     "実行が %s で完了しました",
		"Rendered %d/%d frames (%.1f fps)":        "%d/%d フレームをレンダリング済み (%.1f fps)",

		// Cleanup (best-effort, logged as warnings)
		"Worker teardown reported an error: %s": "ワーカーの終了処理でエラーが発生しました: %s",
		"Failed to close browser: %s":           "ブラウザのクローズに失敗しました: %s",
		"Failed to stop media service: %s":      "メディアサービスの停止に失敗しました: %s",
		"Failed to stop bundler: %s":            "バンドラーの停止に失敗しました: %s",
		"Failed to remove part artifact %s: %s":  "パートアーティファクト %s の削除に失敗しました: %s",

		// Scene page
		"Scene reported a page error on frame %d: %s": "フレーム %d でシーンがページエラーを報告しました: %s",

		// Concatenation and verification
		"Concatenating %d parts (raw=%v)": "%d パートを連結中 (raw=%v)",
		"Wrote output to %s":              "出力を %s に書き込みました",
		"Verified frame count: %d":        "フレーム数を検証しました: %d",

		// Encoder sink
		"Opened encoder for part %d: %s at %d fps":     "パート %d のエンコーダーを開きました: %s (%d fps)",
		"Encoder write failed for part %d: %s":         "パート %d のエンコーダー書き込みに失敗しました: %s",
		"Encoder exited with an error for part %d: %s": "パート %d のエンコーダーがエラー終了しました: %s",
		"Closed encoder for part %d":                   "パート %d のエンコーダーを閉じました",
		"Killed encoder for part %d":                   "パート %d のエンコーダーを強制終了しました",
	})
}
