package recommend

import (
	"fmt"
	"strings"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

// Sentinel is the marker the extraction prompt asks the model to emit for a
// dimension it could not map onto the catalog vocabulary. "unknown" and
// "none" are accepted as synonyms when parsing.
const Sentinel = "알 수 없음"

// ApologyNoMatches is returned verbatim when the filtered catalog is empty;
// no narration call is made in that case.
const ApologyNoMatches = "죄송합니다. 요청하신 조건에 맞는 게임을 찾을 수 없습니다."

// ApologyParseFailure is what callers should show when the extraction reply
// could not be parsed.
const ApologyParseFailure = "죄송합니다. 요청을 이해하지 못했습니다. 다시 한번 말씀해 주세요."

const extractSystemTemplate = `당신은 사용자의 입력에서 게임 추천을 위한 정보를 추출하는 전문가입니다.
사용자의 텍스트에서 아래 조건에 따라 정보를 추출하고, 정확히 지정된 형식으로 반환하세요.
각 항목은 여러 개의 값을 가질 수 있습니다.

**조건**
1. 장르는 반드시 아래 리스트 안에서 반환하세요. 비슷한 장르를 모두 포함하세요. 없으면 '알 수 없음'으로 반환하세요:
   - %s
2. 플랫폼은 반드시 아래 리스트 안에서 반환하세요. 비슷한 플랫폼을 모두 포함하세요. 없으면 '알 수 없음'으로 반환하세요:
   - %s
3. 출시일(released) 정보가 없으면 '알 수 없음'으로 반환하세요.
4. 게임을 구매할 수 있는 상점은 반드시 아래 리스트 안에서 반환하세요. 없으면 '알 수 없음'으로 반환하세요:
   - %s
5. ESRB 등급은 반드시 아래 리스트 안에서 반환하세요. 없으면 '알 수 없음'으로 반환하세요:
   - %s

출력 형식:
- 장르: (추출된 여러 장르 또는 '알 수 없음')
- 플랫폼: (추출된 여러 플랫폼 또는 '알 수 없음')
- 출시일: (추출된 출시일 또는 '알 수 없음')
- 상점: (추출된 여러 상점 또는 '알 수 없음')
- ESRB 등급: (추출된 여러 ESRB 등급 또는 '알 수 없음')

사용자 입력과 무관한 값이나 지정된 범위를 벗어난 값은 절대 포함하지 마세요.`

const narrateSystem = `당신은 사용자에게 게임 추천 메시지를 작성하는 전문가입니다.
입력된 추천 게임 목록을 기반으로, 각 게임에 대한 간략한 설명을 포함한 추천 메시지를 작성하세요.

**규칙**
1. 각 게임에 대해 간단하고 흥미로운 설명을 작성하세요. 설명은 게임의 장르, 특징, 또는 재미 요소를 포함해야 합니다.
2. 게임 목록에 주어진 순서를 유지하여 각 게임에 대한 설명을 작성하세요.
3. 모든 게임을 포함하며, 사용자에게 친근하고 매력적인 어조로 작성하세요.
4. 설명이 없거나 정보가 부족한 경우, "이 게임은 다양한 모험과 재미를 제공합니다."와 같은 일반적인 문구를 사용하세요.`

const chatSystem = `당신은 게임 추천 챗봇입니다.
이전 대화 내용을 바탕으로 사용자 입력에 대한 적절한 답변을 해 주세요.`

func extractSystemPrompt(v domain.Vocabulary) string {
	return fmt.Sprintf(extractSystemTemplate,
		strings.Join(v.Genres, ", "),
		strings.Join(v.Platforms, ", "),
		strings.Join(v.Stores, ", "),
		strings.Join(v.ESRBRatings, ", "),
	)
}

func extractUserPrompt(userText string) string {
	return fmt.Sprintf("입력: %q", userText)
}

func narrateUserPrompt(names []string) string {
	return fmt.Sprintf("다음은 추천할 만한 게임 목록입니다:\n%s\n\n각 게임에 대해 간략한 설명을 추가해주세요.",
		strings.Join(names, "\n"))
}

// chatUserPrompt joins prior "role: content" lines with the new user text
// into a single context block.
func chatUserPrompt(history []domain.Message, userText string) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Role.String())
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("user: ")
	b.WriteString(userText)
	return b.String()
}
