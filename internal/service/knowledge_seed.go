package service

import "aipin/internal/models"

// DefaultKnowledge is served when no usable knowledge document exists.
func DefaultKnowledge() *models.KnowledgeBase {
	return models.NewKnowledgeBase([]models.Category{
		{Name: "general", Topics: []models.Topic{
			{Phrase: "नमस्ते", Answer: "नमस्ते! मैं Aipin AI हूं। आपकी कैसे मदद कर सकता हूं?"},
			{Phrase: "धन्यवाद", Answer: "आपका स्वागत है! कोई और प्रश्न?"},
			{Phrase: "अलविदा", Answer: "अलविदा! फिर मिलेंगे।"},
		}},
		{Name: "programming", Topics: []models.Topic{
			{Phrase: "python", Answer: "Python एक हाई-लेवल प्रोग्रामिंग भाषा है।\n\nउदाहरण:\n```python\nprint('नमस्ते दुनिया!')\nname = input('आपका नाम: ')\nprint(f'नमस्ते {name}')\n```"},
			{Phrase: "javascript", Answer: "JavaScript वेब डेवलपमेंट की भाषा है।\n\nउदाहरण:\n```javascript\nconsole.log('Hello World');\nfunction greet(name) {\n  return `Hello ${name}`;\n}\n```"},
			{Phrase: "html", Answer: "HTML वेब पेज की स्ट्रक्चर बनाता है।\n\nउदाहरण:\n```html\n<!DOCTYPE html>\n<html>\n<head>\n  <title>मेरा पेज</title>\n</head>\n<body>\n  <h1>नमस्ते दुनिया!</h1>\n</body>\n</html>\n```"},
		}},
		{Name: "education", Topics: []models.Topic{
			{Phrase: "गणित", Answer: "गणित संख्याओं, संरचनाओं, स्थान और परिवर्तन का अध्ययन है।"},
			{Phrase: "विज्ञान", Answer: "विज्ञान प्रकृति और भौतिक दुनिया का व्यवस्थित अध्ययन है।"},
			{Phrase: "इतिहास", Answer: "इतिहास मानव अतीत का अध्ययन है।"},
		}},
	})
}

// SampleKnowledge is merged into the document by the seed step.
func SampleKnowledge() *models.KnowledgeBase {
	return models.NewKnowledgeBase([]models.Category{
		{Name: "aipin_info", Topics: []models.Topic{
			{Phrase: "aipin क्या है", Answer: "Aipin एक AI असिस्टेंट है जो DeepSeek की तरह काम करता है।"},
			{Phrase: "aipin के फीचर्स", Answer: "1. AI चैट\n2. फाइल अपलोड\n3. वेब खोज\n4. चैट हिस्ट्री"},
			{Phrase: "aipin का उपयोग", Answer: "आप Aipin से कोई भी प्रश्न पूछ सकते हैं, फाइलें अपलोड कर सकते हैं और वेब खोज कर सकते हैं।"},
		}},
		{Name: "technology", Topics: []models.Topic{
			{Phrase: "ai", Answer: "AI (कृत्रिम बुद्धिमत्ता) मशीनों द्वारा बुद्धिमत्ता का प्रदर्शन है।"},
			{Phrase: "मशीन लर्निंग", Answer: "मशीन लर्निंग AI का एक हिस्सा है जो सिस्टम को डेटा से सीखने देता है।"},
			{Phrase: "डीप लर्निंग", Answer: "डीप लर्निंग न्यूरल नेटवर्क का उपयोग करके मशीन लर्निंग का एक प्रकार है।"},
		}},
	})
}
