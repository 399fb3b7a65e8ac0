package summarizer

import (
	"encoding/json"

	"github.com/jonesrussell/newsbrief/internal/articles"
)

// briefPrompt is the fixed instruction template for the daily brief. It is a
// constant of the product, not a per-run configuration: the brief's editorial
// shape (bilingual markdown, per-story analysis, closing investment notes) is
// defined here and only the article data varies.
const briefPrompt = `作为资深投资顾问以及新闻编辑，请将以下JSON格式的新闻条目整合为每日简报。
## 要求
1. 首段总结当日核心事件
2. 每个新闻单独段落，包含：
   - 关键事实
   - 影响分析
   - 相关背景
3. 结尾添加投资决策建议及风险提示
4. 使用Markdown格式，注意排版美观、专业、易于阅读
5. 对所有内容生成双语版本（中/英），以便对比阅读。注意格式美观、专业、易于阅读

## 注意
输出仅返回markdown内容（不要包含` + "```markdown" + `等符号），请勿返回任何其他内容。你的内容将直接用于展示。
`

// promptDataHeader separates the instruction template from the article data.
const promptDataHeader = "\n\n输入数据:\n"

// ComposePrompt builds the single user message sent upstream: the fixed
// instruction template followed by the article records re-encoded as indented
// JSON with non-ASCII characters preserved literally.
func ComposePrompt(records []json.RawMessage) (string, error) {
	data, err := articles.EncodeIndent(records)
	if err != nil {
		return "", err
	}
	return briefPrompt + promptDataHeader + string(data), nil
}
