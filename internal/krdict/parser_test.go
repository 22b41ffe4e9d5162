package krdict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sarangXML = `<?xml version="1.0" encoding="UTF-8"?>
<channel>
	<title>한국어 기초사전 개발 지원(Open API) - 사전 검색</title>
	<total>2</total>
	<item>
		<target_code>12345</target_code>
		<word>사랑</word>
		<pronunciation>사랑</pronunciation>
		<pos>명사</pos>
		<link>https://krdict.korean.go.kr/dicSearch/SearchView?ParaWordNo=12345</link>
		<sense>
			<sense_order>1</sense_order>
			<definition>어떤 사람이나 존재를 몹시 아끼고 귀중히 여기는 마음.</definition>
			<translation>
				<trans_lang>프랑스어</trans_lang>
				<trans_word> amour </trans_word>
				<trans_dfn>Sentiment de tendresse envers quelqu'un.</trans_dfn>
			</translation>
		</sense>
		<sense>
			<sense_order>2</sense_order>
			<definition>남녀 간에 그리워하는 마음.</definition>
		</sense>
	</item>
	<item>
		<target_code>67890</target_code>
		<word>사랑하다</word>
		<pos>동사</pos>
		<origin></origin>
		<sense>
			<sense_order>1</sense_order>
			<definition><![CDATA[아끼고 귀중히 여기다.]]></definition>
			<translation>
				<trans_word>aimer</trans_word>
			</translation>
		</sense>
	</item>
</channel>`

func TestParseEntries(t *testing.T) {
	entries, err := ParseEntries(strings.NewReader(sarangXML))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "12345", first.TargetCode)
	assert.Equal(t, "사랑", first.Word)
	assert.Equal(t, "명사", first.POS)
	assert.Equal(t, "사랑", first.Pronunciation)
	require.Len(t, first.Senses, 2)
	assert.Equal(t, "1", first.Senses[0].Order)
	require.NotNil(t, first.Senses[0].Translation)
	assert.Equal(t, "프랑스어", first.Senses[0].Translation.Lang)
	assert.Equal(t, "amour", first.Senses[0].TranslationWord())
	assert.Equal(t, "Sentiment de tendresse envers quelqu'un.", first.Senses[0].TranslationDefinition())
	assert.Nil(t, first.Senses[1].Translation)
	assert.Equal(t, "", first.Senses[1].TranslationWord())

	second := entries[1]
	assert.Equal(t, "67890", second.TargetCode)
	assert.Equal(t, "아끼고 귀중히 여기다.", second.Senses[0].Definition)
	assert.Equal(t, "aimer", second.Senses[0].TranslationWord())
	assert.Equal(t, "", second.Senses[0].TranslationDefinition())
}

func TestParseEntries_Empty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "whitespace body", body: "  \n"},
		{name: "channel without items", body: `<channel><total>0</total></channel>`},
		{name: "unknown root", body: `<rss></rss>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseEntries(strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Empty(t, entries)
			assert.NotNil(t, entries)
		})
	}
}

func TestParseEntries_APIError(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?><error><error_code>020</error_code><message>등록되지 않은 인증키입니다.</message></error>`
	_, err := ParseEntries(strings.NewReader(body))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "020", apiErr.Code)
}

func TestParseEntries_Malformed(t *testing.T) {
	_, err := ParseEntries(strings.NewReader(`<channel><item>`))
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		token   string
		want    Direction
		wantErr bool
	}{
		{token: "", want: KoreanToFrench},
		{token: "ko-fr", want: KoreanToFrench},
		{token: "fr-ko", want: FrenchToKorean},
		{token: "en-ko", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseDirection(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
