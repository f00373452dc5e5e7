// Package catalog holds the fixed set of 60 radicals the app teaches.
// The set is defined at build time and never changes at runtime.
package catalog

import (
	"strings"
	"unicode"

	"github.com/example/radbot/pkg/models"
	"golang.org/x/text/unicode/norm"
)

var radicals = []models.Radical{
	{ID: 1, Name: "Nhân", Radical: "人 / 亻", Pinyin: "rén", Meaning: "con người; việc liên quan người", Mnemonic: "nhìn như người đang đứng", Examples: []string{"你", "他", "住", "作", "休"}},
	{ID: 2, Name: "Khẩu", Radical: "口", Pinyin: "kǒu", Meaning: "miệng; nói; ăn uống", Mnemonic: "cái miệng vuông đang mở", Examples: []string{"吃", "喝", "問", "叫", "呢"}},
	{ID: 3, Name: "Đao", Radical: "刀 / 刂", Pinyin: "dāo", Meaning: "dao; cắt; xử lý", Mnemonic: "lưỡi dao có tay cầm", Examples: []string{"到", "別", "利", "刻", "刪"}},
	{ID: 4, Name: "Lực", Radical: "力", Pinyin: "lì", Meaning: "sức; lực; cố gắng", Mnemonic: "cánh tay đang gồng", Examples: []string{"動", "努", "加", "助", "勞"}},
	{ID: 5, Name: "Thổ", Radical: "土", Pinyin: "tǔ", Meaning: "đất; nền; địa phương", Mnemonic: "mặt đất + cọc đứng", Examples: []string{"地", "在", "城", "場", "境"}},
	{ID: 6, Name: "Đại", Radical: "大", Pinyin: "dà", Meaning: "to; lớn", Mnemonic: "người dang tay chân thật rộng", Examples: []string{"天", "太", "夫", "央", "奇"}},
	{ID: 7, Name: "Nữ", Radical: "女", Pinyin: "nǚ", Meaning: "phụ nữ; nữ", Mnemonic: "người phụ nữ ngồi", Examples: []string{"好", "媽", "姐", "妹", "姓"}},
	{ID: 8, Name: "Tử", Radical: "子", Pinyin: "zǐ", Meaning: "con; trẻ em", Mnemonic: "em bé dang tay", Examples: []string{"字", "孩", "孔", "孫", "學"}},
	{ID: 9, Name: "Miên", Radical: "宀", Pinyin: "mián", Meaning: "mái nhà; trong nhà", Mnemonic: "mái che phía trên", Examples: []string{"家", "安", "室", "客", "宿"}},
	{ID: 10, Name: "Sơn", Radical: "山", Pinyin: "shān", Meaning: "núi", Mnemonic: "ba đỉnh núi", Examples: []string{"出", "島", "岩", "峰", "岸"}},
	{ID: 11, Name: "Nhật", Radical: "日", Pinyin: "rì", Meaning: "mặt trời; ngày", Mnemonic: "mặt trời hình ô vuông", Examples: []string{"明", "時", "早", "晚", "星"}},
	{ID: 12, Name: "Nguyệt", Radical: "月", Pinyin: "yuè", Meaning: "mặt trăng; tháng (đôi khi gợi bộ phận cơ thể)", Mnemonic: "mặt trăng cong", Examples: []string{"服", "期", "朋", "腦", "腳"}},
	{ID: 13, Name: "Mộc", Radical: "木", Pinyin: "mù", Meaning: "cây; gỗ", Mnemonic: "thân cây + cành", Examples: []string{"林", "森", "桌", "校", "杯"}},
	{ID: 14, Name: "Thủy", Radical: "水 / 氵", Pinyin: "shuǐ", Meaning: "nước; chất lỏng", Mnemonic: "dòng nước chảy", Examples: []string{"河", "海", "洗", "酒", "游"}},
	{ID: 15, Name: "Hỏa", Radical: "火 / 灬", Pinyin: "huǒ", Meaning: "lửa; nóng; nấu", Mnemonic: "ngọn lửa bốc lên", Examples: []string{"熱", "燈", "煮", "然", "煙"}},
	{ID: 16, Name: "Ngưu", Radical: "牛", Pinyin: "niú", Meaning: "trâu/bò", Mnemonic: "đầu bò có sừng", Examples: []string{"物", "特", "牽", "牧", "犧"}},
	{ID: 17, Name: "Khuyển", Radical: "犬 / 犭", Pinyin: "quǎn", Meaning: "chó; thú", Mnemonic: "con chó có đuôi", Examples: []string{"狗", "獨", "獎", "猶", "獵"}},
	{ID: 18, Name: "Điền", Radical: "田", Pinyin: "tián", Meaning: "ruộng; ô/khu", Mnemonic: "ruộng chia 4 ô", Examples: []string{"男", "界", "留", "當", "畫"}},
	{ID: 19, Name: "Mục", Radical: "目", Pinyin: "mù", Meaning: "mắt; nhìn", Mnemonic: "con mắt có đồng tử", Examples: []string{"看", "相", "眼", "直", "睡"}},
	{ID: 20, Name: "Thạch", Radical: "石", Pinyin: "shí", Meaning: "đá; cứng; khoáng", Mnemonic: "hòn đá dưới chân núi", Examples: []string{"硬", "破", "碗", "礦", "碼"}},
	{ID: 21, Name: "Hòa", Radical: "禾", Pinyin: "hé", Meaning: "lúa; mùa vụ", Mnemonic: "bông lúa có hạt", Examples: []string{"秋", "種", "科", "稅", "穩"}},
	{ID: 22, Name: "Trúc", Radical: "竹 / ⺮", Pinyin: "zhú", Meaning: "tre; đồ tre; bút/sách", Mnemonic: "hai thân tre song song", Examples: []string{"筆", "笑", "等", "箱", "簡"}},
	{ID: 23, Name: "Mễ", Radical: "米", Pinyin: "mǐ", Meaning: "gạo; hạt; bột", Mnemonic: "hạt gạo tỏa ra", Examples: []string{"粉", "糖", "精", "糧", "粥"}},
	{ID: 24, Name: "Thảo", Radical: "艸 / 艹", Pinyin: "cǎo", Meaning: "cỏ; thảo mộc", Mnemonic: "cỏ mọc trên đầu chữ", Examples: []string{"花", "茶", "菜", "藥", "草"}},
	{ID: 25, Name: "Trùng", Radical: "虫", Pinyin: "chóng", Meaning: "côn trùng; sâu", Mnemonic: "con sâu có đầu", Examples: []string{"蛇", "蝦", "蜂", "蚊", "蛋"}},
	{ID: 26, Name: "Y", Radical: "衣 / 衤", Pinyin: "yī", Meaning: "quần áo; mặc", Mnemonic: "áo choàng phủ người", Examples: []string{"被", "褲", "裙", "裝", "補"}},
	{ID: 27, Name: "Ngôn", Radical: "言 / 訁", Pinyin: "yán", Meaning: "lời nói; ngôn ngữ", Mnemonic: "miệng phát ra lời", Examples: []string{"話", "說", "謝", "請", "認"}},
	{ID: 28, Name: "Tâm", Radical: "心 / 忄", Pinyin: "xīn", Meaning: "tim; cảm xúc; nghĩ", Mnemonic: "trái tim 3 nhịp", Examples: []string{"想", "忙", "快", "愛", "情"}},
	{ID: 29, Name: "Bối", Radical: "貝", Pinyin: "bèi", Meaning: "tiền; của cải", Mnemonic: "vỏ sò cổ đại = tiền", Examples: []string{"買", "貴", "財", "費", "貿"}},
	{ID: 30, Name: "Túc", Radical: "足 / ⻊", Pinyin: "zú", Meaning: "chân; đi; đủ", Mnemonic: "bàn chân bước đi", Examples: []string{"路", "跑", "跟", "距", "跳"}},
	{ID: 31, Name: "Xa", Radical: "車", Pinyin: "chē", Meaning: "xe; phương tiện", Mnemonic: "khung xe + bánh", Examples: []string{"開", "軍", "轉", "輪", "輕"}},
	{ID: 32, Name: "Sước", Radical: "辶", Pinyin: "chuò", Meaning: "đi lại; đường; đến", Mnemonic: "đường cong + bước", Examples: []string{"這", "進", "近", "遠", "還"}},
	{ID: 33, Name: "Ấp", Radical: "邑 / 阝(phải)", Pinyin: "yì", Meaning: "làng/thành; nơi chốn", Mnemonic: "khu dân cư có tường", Examples: []string{"都", "郵", "郊", "鄉", "鄰"}},
	{ID: 34, Name: "Phụ", Radical: "阜 / 阝(trái)", Pinyin: "fù", Meaning: "gò/đồi; bậc", Mnemonic: "bậc thềm/đống đất", Examples: []string{"陸", "階", "降", "隊", "陽"}},
	{ID: 35, Name: "Kim", Radical: "金", Pinyin: "jīn", Meaning: "kim loại; vàng", Mnemonic: "kim loại lấp lánh", Examples: []string{"錢", "銀", "鐵", "鐘", "銷"}},
	{ID: 36, Name: "Môn", Radical: "門", Pinyin: "mén", Meaning: "cửa; cổng", Mnemonic: "hai cánh cửa", Examples: []string{"開", "間", "聞", "閃", "閉"}},
	{ID: 37, Name: "Vũ", Radical: "雨", Pinyin: "yǔ", Meaning: "mưa; thời tiết", Mnemonic: "mây + giọt mưa", Examples: []string{"雪", "雷", "雲", "霧", "露"}},
	{ID: 38, Name: "Thực", Radical: "食 / 飠", Pinyin: "shí", Meaning: "ăn; thức ăn", Mnemonic: "miệng + đồ ăn", Examples: []string{"飯", "餓", "館", "飲", "餅"}},
	{ID: 39, Name: "Mã", Radical: "馬", Pinyin: "mǎ", Meaning: "ngựa", Mnemonic: "ngựa có bờm", Examples: []string{"騎", "驚", "駕", "驗", "驛"}},
	{ID: 40, Name: "Ngư", Radical: "魚", Pinyin: "yú", Meaning: "cá", Mnemonic: "cá có vây", Examples: []string{"鮮", "鯨", "鰻", "鱗", "魯"}},
	{ID: 41, Name: "Điểu", Radical: "鳥", Pinyin: "niǎo", Meaning: "chim", Mnemonic: "chim có mỏ", Examples: []string{"鳴", "鴨", "雞", "鷹", "鴿"}},
	{ID: 42, Name: "Quảng", Radical: "广", Pinyin: "guǎng", Meaning: "mái che; tòa nhà", Mnemonic: "mái nghiêng", Examples: []string{"店", "床", "庫", "廳", "府"}},
	{ID: 43, Name: "Hiệt", Radical: "頁", Pinyin: "yè", Meaning: "đầu; mặt", Mnemonic: "đầu người nghiêng", Examples: []string{"顏", "額", "順", "題", "頭"}},
	{ID: 44, Name: "Công", Radical: "工", Pinyin: "gōng", Meaning: "công việc; kỹ thuật", Mnemonic: "khung dụng cụ", Examples: []string{"作", "功", "江", "紅", "巧"}},
	{ID: 45, Name: "Phộc", Radical: "攴 / 攵", Pinyin: "pū", Meaning: "đánh/tác động; sửa đổi", Mnemonic: "tay cầm que gõ", Examples: []string{"改", "教", "收", "攻", "政"}},
	{ID: 46, Name: "Thị", Radical: "示 / 礻", Pinyin: "shì", Meaning: "lễ; thờ; phúc", Mnemonic: "bàn thờ nhỏ", Examples: []string{"神", "福", "祝", "禮", "祖"}},
	{ID: 47, Name: "Ty", Radical: "糸 / 糹", Pinyin: "mì", Meaning: "sợi; dệt; liên kết", Mnemonic: "cuộn chỉ", Examples: []string{"經", "線", "結", "級", "續"}},
	{ID: 48, Name: "Tẩu", Radical: "走", Pinyin: "zǒu", Meaning: "đi; chạy", Mnemonic: "người chạy nghiêng", Examples: []string{"起", "超", "赴", "趕", "越"}},
	{ID: 49, Name: "Thập", Radical: "十", Pinyin: "shí", Meaning: "mười; dấu cộng", Mnemonic: "cắt ngang ở giữa", Examples: []string{"千", "協", "博", "南", "十"}},
	{ID: 50, Name: "Bát", Radical: "八", Pinyin: "bā", Meaning: "tách ra; chia", Mnemonic: "hai nét tách đôi", Examples: []string{"分", "公", "共", "兵", "其"}},
	{ID: 51, Name: "Hựu", Radical: "又", Pinyin: "yòu", Meaning: "tay; lại nữa", Mnemonic: "bàn tay phải", Examples: []string{"友", "取", "受", "雙", "反"}},
	{ID: 52, Name: "Nhục", Radical: "肉 / ⺼", Pinyin: "ròu", Meaning: "thịt; thân thể", Mnemonic: "miếng thịt có vân", Examples: []string{"肥", "腸", "胃", "腳", "腦"}},
	{ID: 53, Name: "Cân", Radical: "巾", Pinyin: "jīn", Meaning: "khăn; vải", Mnemonic: "khăn treo xuống", Examples: []string{"布", "帽", "帆", "帳", "幫"}},
	{ID: 54, Name: "Huyệt", Radical: "穴", Pinyin: "xué", Meaning: "hang; lỗ; chỗ trống", Mnemonic: "mái che + lỗ", Examples: []string{"空", "窗", "究", "穿", "窄"}},
	{ID: 55, Name: "Phương", Radical: "方", Pinyin: "fāng", Meaning: "hướng; cách; phương", Mnemonic: "tấm bảng vuông", Examples: []string{"房", "旅", "族", "放", "方法"}},
	{ID: 56, Name: "Lão", Radical: "老", Pinyin: "lǎo", Meaning: "già; cũ", Mnemonic: "người già chống gậy", Examples: []string{"考", "者", "老師", "孝"}},
	{ID: 57, Name: "Thần", Radical: "辰", Pinyin: "chén", Meaning: "buổi sớm; thời điểm", Mnemonic: "mặt trời vừa nhú", Examples: []string{"晨", "農", "辱"}},
	{ID: 58, Name: "Cung", Radical: "弓", Pinyin: "gōng", Meaning: "cung; kéo", Mnemonic: "cây cung cong", Examples: []string{"強", "張", "引", "彈"}},
	{ID: 59, Name: "Bạch", Radical: "白", Pinyin: "bái", Meaning: "trắng; sáng; rõ", Mnemonic: "ánh sáng trong ô", Examples: []string{"明白", "百", "皆", "皂"}},
	{ID: 60, Name: "Hộ", Radical: "戶", Pinyin: "hù", Meaning: "cửa nhà; hộ gia đình", Mnemonic: "cánh cửa nhìn nghiêng", Examples: []string{"所", "房", "扇", "戶口"}},
}

var byID = func() map[int]models.Radical {
	m := make(map[int]models.Radical, len(radicals))
	for _, r := range radicals {
		m[r.ID] = r
	}
	return m
}()

// Size returns the number of radicals in the catalog
func Size() int {
	return len(radicals)
}

// All returns every radical in catalog order
func All() []models.Radical {
	out := make([]models.Radical, len(radicals))
	copy(out, radicals)
	return out
}

// IDs returns all radical ids in catalog order
func IDs() []int {
	ids := make([]int, len(radicals))
	for i, r := range radicals {
		ids[i] = r.ID
	}
	return ids
}

// ByID returns the radical with the given id
func ByID(id int) (models.Radical, bool) {
	r, ok := byID[id]
	return r, ok
}

// Pinyin returns the radical's pronunciation, with tone marks stripped
// when the toneMarks setting is off
func Pinyin(r models.Radical, toneMarks bool) string {
	if toneMarks {
		return r.Pinyin
	}
	return Normalize(r.Pinyin)
}

// Normalize lowercases a string and strips diacritics, for tone-insensitive
// display and search
func Normalize(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Search returns the radicals whose name, glyph, pinyin, meaning or examples
// contain the query, ignoring case and diacritics. An empty query matches all.
func Search(query string) []models.Radical {
	q := Normalize(query)
	if q == "" {
		return All()
	}
	var out []models.Radical
	for _, r := range radicals {
		hay := Normalize(strings.Join([]string{r.Name, r.Radical, r.Pinyin, r.Meaning, strings.Join(r.Examples, " ")}, " "))
		if strings.Contains(hay, q) {
			out = append(out, r)
		}
	}
	return out
}
