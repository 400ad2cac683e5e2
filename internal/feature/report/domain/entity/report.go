package entity

// ReportDocument は組み立て済みのPDFレポートを表します。
type ReportDocument struct {
	PDF      []byte // 完成したPDFのバイト列
	Degraded bool   // Unicodeフォントが無く代替フォントで生成された場合true
	Warning  string // 劣化モード時に利用者へ提示する警告（通常は空）
}
