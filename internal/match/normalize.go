// 包 match：几何要素与业务省份记录的对齐
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// 文档注释：名称归一化（仅作比较键，不用于展示）
// 背景：几何源与业务库各自维护命名，大小写、标点、空白习惯不同。
// 约束：先去掉非字母数字非空白字符，再压缩空白并去首尾，保证幂等：Normalize(Normalize(s)) == Normalize(s)。
func Normalize(s string) string {
	s = norm.NFC.String(strings.ToUpper(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
